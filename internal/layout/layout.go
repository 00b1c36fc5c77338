package layout

// ChartType tags which renderer a grid cell uses.
type ChartType string

const (
	ChartTrend      ChartType = "trend"
	ChartSkills     ChartType = "skills"
	ChartRegions    ChartType = "regions"
	ChartIndustries ChartType = "industries"
	ChartSalary     ChartType = "salary"
)

// ChartTypes lists every known tag in layout order.
var ChartTypes = []ChartType{ChartTrend, ChartSkills, ChartRegions, ChartIndustries, ChartSalary}

// Known reports whether t is one of the five chart tags.
func (t ChartType) Known() bool {
	switch t {
	case ChartTrend, ChartSkills, ChartRegions, ChartIndustries, ChartSalary:
		return true
	}
	return false
}

// ChartConfig places one chart on the 12-column bento grid.
type ChartConfig struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	ColSpan int       `json:"colSpan"`
	RowSpan int       `json:"rowSpan,omitempty"`
	Type    ChartType `json:"type"`
}

// Rows returns the row span, defaulting to one row.
func (c ChartConfig) Rows() int {
	if c.RowSpan < 1 {
		return 1
	}
	return c.RowSpan
}

// Dashboard is the grid, in render order.
var Dashboard = []ChartConfig{
	{ID: "hero-trend", Title: "市場熱度趨勢", ColSpan: 8, RowSpan: 2, Type: ChartTrend},
	{ID: "top-skills", Title: "熱門技能 Top 10", ColSpan: 4, Type: ChartSkills},
	{ID: "region-dist", Title: "職缺地理分佈", ColSpan: 4, Type: ChartRegions},
	{ID: "industry-dist", Title: "產業佔比", ColSpan: 4, Type: ChartIndustries},
	{ID: "salary-dist", Title: "薪資分佈", ColSpan: 4, Type: ChartSalary},
}

// Lookup finds a grid cell by id.
func Lookup(id string) (ChartConfig, bool) {
	for _, cfg := range Dashboard {
		if cfg.ID == id {
			return cfg, true
		}
	}
	return ChartConfig{}, false
}

// Colors used across charts, as hex without '#'.
const (
	ColorPrimary = "0ea5e9"
	ColorAccent  = "f59e0b"
	ColorSuccess = "10b981"
	ColorSlate   = "64748b"
)

// Palette cycles across categorical series.
var Palette = []string{
	"0ea5e9",
	"8b5cf6",
	"f59e0b",
	"10b981",
	"ef4444",
	"ec4899",
	"6366f1",
	"14b8a6",
	"f97316",
	"84cc16",
}

// PaletteAt returns the i-th palette color, wrapping around.
func PaletteAt(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}
