package web

import "html/template"

// dashboardTemplate renders the operator view: one table row per registered
// miner with presence evaluated at request time.
var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="30">
<title>Miners</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: left; }
th { background: #f0f0f0; }
.online { color: #2e7d32; font-weight: bold; }
.offline { color: #c62828; }
</style>
</head>
<body>
<h1>Miners</h1>
<table id="miners">
<thead>
<tr>
<th>Username</th>
<th>Device</th>
<th>Hashrate (H/s)</th>
<th>Threads</th>
<th>Accepted (24h)</th>
<th>TRX (24h)</th>
<th>Status</th>
<th>Last seen</th>
</tr>
</thead>
<tbody>
{{range .Rows}}<tr>
<td class="username">{{.Username}}</td>
<td>{{.DeviceModel}}</td>
<td>{{printf "%.2f" .Hashrate}}</td>
<td>{{.Threads}}</td>
<td>{{.AcceptedDaily}}</td>
<td>{{printf "%.4f" .TrxDaily}}</td>
<td class="{{if .Online}}online{{else}}offline{{end}}">{{if .Online}}online{{else}}offline{{end}}</td>
<td class="last-seen">{{.ElapsedLabel}}</td>
</tr>
{{end}}</tbody>
</table>
<p>{{len .Rows}} miner(s) registered.</p>
</body>
</html>
`))
