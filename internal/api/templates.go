package api

import (
	"fmt"
	"html/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"market_dashboard/internal/charts"
	"market_dashboard/internal/dashboard"
	"market_dashboard/internal/layout"
)

var printer = message.NewPrinter(language.TraditionalChinese)

type cellView struct {
	layout.ChartConfig
	Src string
}

type pageView struct {
	Loading     bool
	Error       string
	Filter      string
	HasData     bool
	TotalJobs   string
	LastUpdated string
	Median      string
	Cells       []cellView
}

func newPageView(state dashboard.State, opts charts.Options) pageView {
	v := pageView{
		Loading: state.Loading(),
		Error:   state.ErrorMessage(),
		Filter:  state.Filter,
		HasData: state.Data != nil,
	}
	if state.Data != nil {
		summary := charts.Summarize(state.Data, opts)
		v.TotalJobs = printer.Sprintf("%d", summary.Meta.TotalJobs)
		v.LastUpdated = formatTimestamp(summary.Meta.LastUpdated)
		v.Median = summary.SalaryMedian
	}
	for _, cfg := range layout.Dashboard {
		v.Cells = append(v.Cells, cellView{
			ChartConfig: cfg,
			Src:         fmt.Sprintf("/charts/%s?v=%d", cfg.ID, state.Seq),
		})
	}
	return v
}

// formatTimestamp accepts ISO-8601 with or without zone and fractional seconds.
func formatTimestamp(s string) string {
	layouts := []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05"}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.Format("2006/01/02 15:04:05")
		}
	}
	return s
}

var pageTemplate = template.Must(template.New("dashboard").Parse(tmplDashboard))

const tmplDashboard = `<!DOCTYPE html>
<html lang="zh-TW">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
{{if .Loading}}<meta http-equiv="refresh" content="2">{{end}}
<title>職缺市場儀表板</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:system-ui,sans-serif;background:#f8fafc;color:#1e293b;font-size:14px}
header{position:sticky;top:0;background:rgba(255,255,255,.85);border-bottom:1px solid #e2e8f0;padding:12px 24px;display:flex;align-items:center;justify-content:space-between;gap:16px;flex-wrap:wrap}
header h1{font-size:20px;font-weight:700}
header .sub{font-size:11px;color:#64748b}
.meta{display:flex;gap:24px;align-items:center;color:#475569}
.meta b{color:#1e293b}
form{display:flex;gap:8px}
input[type=text]{padding:6px 10px;border:1px solid #cbd5e1;border-radius:8px;min-width:200px}
button{padding:6px 12px;border:0;border-radius:8px;background:#0ea5e9;color:#fff;cursor:pointer}
button:disabled{opacity:.5}
.banner{max-width:1600px;margin:16px auto 0;padding:12px 16px;border-radius:12px;background:#fef2f2;border:1px solid #fecaca;color:#b91c1c}
.banner form{display:inline-flex;margin-left:8px}
.banner button{background:none;color:#b91c1c;text-decoration:underline;padding:0}
.grid{max-width:1600px;margin:16px auto;padding:0 24px;display:grid;grid-template-columns:repeat(12,1fr);grid-auto-rows:340px;gap:16px}
.card{background:#fff;border-radius:16px;box-shadow:0 1px 3px rgba(0,0,0,.08);padding:12px;display:flex;flex-direction:column;overflow:hidden}
.card h2{font-size:14px;font-weight:600;color:#334155;margin-bottom:8px}
.card img{flex:1;width:100%;min-height:0;object-fit:contain}
.card .empty{flex:1;display:flex;align-items:center;justify-content:center;color:#94a3b8}
.median{font-size:11px;color:#f59e0b}
@media (max-width:900px){.card{grid-column:span 12 !important}}
</style>
</head>
<body>
<header>
  <div>
    <h1>職缺市場儀表板</h1>
    <div class="sub">Taiwan Job Market Dashboard</div>
  </div>
  {{if .HasData}}
  <div class="meta">
    <span>總職缺: <b>{{.TotalJobs}}</b></span>
    <span>更新: {{.LastUpdated}}</span>
  </div>
  {{end}}
  <form method="post" action="/refresh">
    <input type="text" name="job_name" value="{{.Filter}}" placeholder="搜尋職缺名稱">
    <button type="submit" {{if .Loading}}disabled{{end}} title="重新載入">{{if .Loading}}載入中…{{else}}重新載入{{end}}</button>
  </form>
</header>
{{if .Error}}
<div class="banner">
  載入失敗: {{.Error}}
  <form method="post" action="/refresh"><button type="submit">重試</button></form>
</div>
{{end}}
<main class="grid">
{{range .Cells}}
  <section class="card" style="grid-column:span {{.ColSpan}};grid-row:span {{.Rows}}">
    <h2>{{.Title}}{{if and (eq .Type "salary") $.Median}} <span class="median">中位數 {{$.Median}}</span>{{end}}</h2>
    {{if $.HasData}}<img src="{{.Src}}" alt="{{.Title}}">{{else}}<div class="empty">{{if $.Loading}}載入中…{{else}}尚無資料{{end}}</div>{{end}}
  </section>
{{end}}
</main>
</body>
</html>`
