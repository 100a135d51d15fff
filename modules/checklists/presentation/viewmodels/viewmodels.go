package viewmodels

import (
	"github.com/fieldware/sitecheck/modules/checklists/domain/form"
)

type FormListItem struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Href  string `json:"href"`
}

type ChecklistItem struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Choices  []string `json:"choices"`
	Required bool     `json:"required"`
}

type ChecklistCategory struct {
	Key   string          `json:"key"`
	Items []ChecklistItem `json:"items"`
}

type FormDetail struct {
	Code         string              `json:"code"`
	Title        string              `json:"title"`
	WitnessCount int                 `json:"witness_count"`
	Categories   []ChecklistCategory `json:"categories"`
}

func FormToListItem(def form.Definition) FormListItem {
	return FormListItem{
		Code:  def.Code,
		Title: def.Title,
		Href:  "/checklists/" + def.Code,
	}
}

func FormToDetail(def form.Definition) FormDetail {
	categories := make([]ChecklistCategory, 0, len(def.Schema))
	for _, cat := range def.Schema {
		items := make([]ChecklistItem, 0, len(cat.Items))
		for _, item := range cat.Items {
			items = append(items, ChecklistItem{
				Key:      item.Key,
				Label:    item.Schema.Label,
				Choices:  item.Schema.Choices,
				Required: item.Schema.Required,
			})
		}
		categories = append(categories, ChecklistCategory{Key: cat.Key, Items: items})
	}
	return FormDetail{
		Code:         def.Code,
		Title:        def.Title,
		WitnessCount: def.WitnessCount,
		Categories:   categories,
	}
}
