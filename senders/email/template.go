package email

const digestTemplate = `
<!DOCTYPE html>
<html>

<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style type="text/css">
    body,
    table,
    td {
      -webkit-text-size-adjust: 100%;
      -ms-text-size-adjust: 100%;
      font-family: 'Cambria';
      font-size: 14px;
    }

    p {
      color: #111111;
    }

    table {
      border-collapse: collapse !important;
    }

    th,
    td {
      border: 1px solid #cccccc;
      padding: 4px 10px;
    }

    th {
      background-color: #eeeeee;
    }
  </style>
</head>

<body>
  <p>Security scan digest: <b>{{.Highest}}</b> risk, {{.Total}} findings total.</p>
  <table>
    <tr>
      <th>Report</th>
      <th>Risk</th>
      <th>Critical</th>
      <th>High</th>
      <th>Medium</th>
      <th>Low</th>
    </tr>
    {{range .Comments}}
    <tr>
      <td>{{.Variant}}</td>
      <td>{{.RiskName}}</td>
      <td>{{.Counts.Critical}}</td>
      <td>{{.Counts.High}}</td>
      <td>{{.Counts.Medium}}</td>
      <td>{{.Counts.Low}}</td>
    </tr>
    {{end}}
  </table>
</body>

</html>
`
