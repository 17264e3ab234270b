package render

const commentTemplate = `## {{.Title}}

{{range .Badges}}{{.}} {{end}}

**Risk Level**: {{.Risk.Emoji}} **{{.RiskName}}**
{{if not .Report.ParseOK}}
> ⚠️ No parseable scan results were found for this run. Zero counts below mean missing data, not a clean scan.
{{end}}
### 📊 Summary

| Severity | Count |
|----------|-------|
| 🔴 Critical | {{.Report.Aggregate.Critical}} |
| 🟠 High | {{.Report.Aggregate.High}} |
| 🟡 Medium | {{.Report.Aggregate.Medium}} |
| 🟢 Low | {{.Report.Aggregate.Low}} |
| **Total** | **{{.Total}}** |

### 📋 Action Items

{{range .ActionItems}}- {{.}}
{{end}}{{if .Trend}}
### 📈 Trend vs previous run

{{range .Trend}}- {{.}}
{{end}}{{end}}{{if .Report.Tools}}
<details>
<summary>🔍 Per-tool breakdown</summary>

| Tool | Critical | High | Medium | Low | Total | Status |
|------|----------|------|--------|-----|-------|--------|
{{range .Report.Tools}}| {{.Name}} | {{.Counts.Critical}} | {{.Counts.High}} | {{.Counts.Medium}} | {{.Counts.Low}} | {{.Counts.Total}} | {{.Status}} |
{{end}}
</details>
{{end}}{{if .Malware}}
<details>
<summary>🦠 Malware scan ({{.Malware.InfectedFiles}} infected of {{.Malware.TotalFiles}} files)</summary>

{{if .Malware.Infections}}{{range .Malware.Infections}}- ` + "`{{.}}`" + `
{{end}}{{else}}No infections found.
{{end}}
</details>
{{end}}
### 🔗 Links

- [📦 Run artifacts]({{.ArtifactURL}})
- [🛡️ Security dashboard]({{.SecurityURL}})
- [⚙️ Security settings]({{.SettingsURL}})
{{if .Remediation}}
<details>
<summary>📚 Remediation guide</summary>

{{range .Remediation}}- {{.}}
{{end}}
</details>
{{end}}
{{.Marker}}
`
