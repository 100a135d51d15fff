package checklist

// Common answer sets for inspection check items.
var (
	YesNo   = []string{"Yes", "No"}
	YesNoNA = []string{"Yes", "No", "N/A"}
)

// ItemSchema describes one check item: its display label, the 2-3 answers
// the inspector may pick from, and whether an answer is mandatory.
type ItemSchema struct {
	Label    string
	Choices  []string
	Required bool
}

type Item struct {
	Key    string
	Schema ItemSchema
}

// Category is a named group of check items. Declaration order is
// significant: validation errors are reported in this order.
type Category struct {
	Key   string
	Items []Item
}

// Schema is the immutable, compiled-in checklist descriptor of one form.
type Schema []Category

// Item looks up an item schema by category and item key.
func (s Schema) Item(categoryKey, itemKey string) (ItemSchema, bool) {
	for _, cat := range s {
		if cat.Key != categoryKey {
			continue
		}
		for _, item := range cat.Items {
			if item.Key == itemKey {
				return item.Schema, true
			}
		}
	}
	return ItemSchema{}, false
}

func (s Schema) HasChoice(categoryKey, itemKey, choice string) bool {
	item, ok := s.Item(categoryKey, itemKey)
	if !ok {
		return false
	}
	for _, c := range item.Choices {
		if c == choice {
			return true
		}
	}
	return false
}
