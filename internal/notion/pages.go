package notion

// Page is a Notion page object, trimmed to the fields the migration
// reads back.
type Page struct {
	Object     string     `json:"object,omitempty"`
	ID         string     `json:"id"`
	URL        string     `json:"url,omitempty"`
	Archived   bool       `json:"archived,omitempty"`
	Properties Properties `json:"properties,omitempty"`
}

// Properties maps property names to their values, for database rows and
// page property updates.
type Properties map[string]PropertyValue

// PropertyValue holds one database property. Exactly one field is set,
// matching the Notion property value schema.
type PropertyValue struct {
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	URL         string         `json:"url,omitempty"`
}

type SelectOption struct {
	Name string `json:"name"`
}

// PlainText flattens a title or rich-text property to its visible text.
func (v PropertyValue) PlainText() string {
	runs := v.Title
	if runs == nil {
		runs = v.RichText
	}
	text := ""
	for _, run := range runs {
		text += run.Text.Content
	}
	return text
}

func TitleProperty(content string) PropertyValue {
	return PropertyValue{Title: []RichText{Text(content)}}
}

func RichTextProperty(content string) PropertyValue {
	return PropertyValue{RichText: []RichText{Text(content)}}
}

func SelectProperty(name string) PropertyValue {
	return PropertyValue{Select: &SelectOption{Name: name}}
}

func MultiSelectProperty(names ...string) PropertyValue {
	options := make([]SelectOption, 0, len(names))
	for _, name := range names {
		options = append(options, SelectOption{Name: name})
	}
	return PropertyValue{MultiSelect: options}
}

func NumberProperty(value float64) PropertyValue {
	return PropertyValue{Number: &value}
}

func URLProperty(url string) PropertyValue {
	return PropertyValue{URL: url}
}
