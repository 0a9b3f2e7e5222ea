package wizard

import (
	"slices"

	"github.com/google/uuid"
)

// Tag is a selectable topic or focus area.
type Tag struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	// Preselected tags start out selected in a new flow.
	Preselected bool `json:"preselected,omitempty" yaml:"preselected,omitempty"`
}

// NewsItem is one candidate story for the episode.
type NewsItem struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Source   string `json:"source" yaml:"source"`
	Minutes  int    `json:"minutes" yaml:"minutes"`
	Category string `json:"category" yaml:"category"`
	Liked    bool   `json:"liked" yaml:"liked"`
}

// Catalog is the static content a flow picks from. News items can be removed
// from a flow's working copy; topics and focus areas are fixed.
type Catalog struct {
	Topics     []Tag      `json:"topics" yaml:"topics"`
	FocusAreas []Tag      `json:"focus_areas" yaml:"focus_areas"`
	News       []NewsItem `json:"news" yaml:"news"`
}

// Clone returns a deep copy so flows never share a working list.
func (c Catalog) Clone() Catalog {
	return Catalog{
		Topics:     slices.Clone(c.Topics),
		FocusAreas: slices.Clone(c.FocusAreas),
		News:       slices.Clone(c.News),
	}
}

// Characters are the narrator voices offered on the presenter step.
var Characters = []string{"SHIRO", "Chicken", "小明", "小美", "Alex"}

// Styles are the delivery styles offered for each narrator.
var Styles = []string{"輕鬆", "反駁", "專業", "幽默", "嚴肅", "學術"}

func newTag(label string) Tag {
	return Tag{ID: uuid.NewString(), Label: label}
}

func newNews(title, source string, minutes int, category string) NewsItem {
	return NewsItem{
		ID:       uuid.NewString(),
		Title:    title,
		Source:   source,
		Minutes:  minutes,
		Category: category,
	}
}

// DefaultCatalog returns the demo catalog with freshly generated ids.
func DefaultCatalog() Catalog {
	china := newTag("中國")
	china.Preselected = true

	return Catalog{
		Topics: []Tag{
			newTag("國際"),
			china,
			newTag("緩"),
			newTag("經濟廣面"),
			newTag("生活日常"),
		},
		FocusAreas: []Tag{
			newTag("政治"),
			newTag("科技"),
			newTag("教育"),
			newTag("環保"),
			newTag("體育"),
		},
		News: []NewsItem{
			newNews("選龍法傳議案送出！政院盼立院受過回應各界訴求", "聯合報", 45, "台灣"),
			newNews("中國人工智慧應用新熱點：人形機器人成為發展新戰場", "聯合報", 45, "台灣"),
			newNews("AI 聖誕老人上線，線上互動新體驗", "新報", 66, "台灣"),
			newNews("奧特曼：OpenAI站在歷史錯誤一邊需思考開源策略", "中央社", 38, "科技"),
			newNews("空難是早晚問題，華府空域宛如惡夢 前機師：幾乎犯錯餘地", "聯合報", 52, "美國"),
			newNews("全球經濟面臨通脹挑戰與能源供應不穩", "udn", 41, "經濟"),
		},
	}
}

func findTag(tags []Tag, id string) int {
	return slices.IndexFunc(tags, func(t Tag) bool { return t.ID == id })
}

func findNews(items []NewsItem, id string) int {
	return slices.IndexFunc(items, func(n NewsItem) bool { return n.ID == id })
}
