package inflect

import "testing"

func TestUnderscore(t *testing.T) {
	n := New(nil)
	tests := []struct {
		in, want string
	}{
		{"widget", "widget"},
		{"widget_thing", "widget_thing"},
		{"Widget", "widget"},
		{"WidgetThing", "widget_thing"},
		{"widgetThing", "widget_thing"},
		{"widget-thing", "widget_thing"},
		{"widget2", "widget2"},
		{"Widget2", "widget2"},
		{"WidgetV2", "widget_v2"},
		{"HTMLParser", "html_parser"},
		{"Ärger", "ärger"},
		{"ÄrgerÜber", "ärger_über"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := n.Underscore(tt.in); got != tt.want {
				t.Errorf("Underscore(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPluralize(t *testing.T) {
	n := New(map[string]string{"octopus": "octopodes"})
	tests := []struct {
		in, want string
	}{
		{"widget", "widgets"},
		{"Thing", "Things"},
		{"category", "categories"},
		{"widget_thing", "widget_things"},
		{"octopus", "octopodes"},
		{"Octopus", "octopodes"},
		{"sheep", "sheep"},
		{"Widget2", "Widget2s"},
		{"WidgetV2", "WidgetV2s"},
		{"Ärger", "Ärgers"},
		{"café", "cafés"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := n.Pluralize(tt.in); got != tt.want {
				t.Errorf("Pluralize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCamelize(t *testing.T) {
	n := New(nil)
	tests := []struct {
		in, want string
	}{
		{"admin", "Admin"},
		{"widgets", "Widgets"},
		{"widget_thing", "WidgetThing"},
		{"index", "Index"},
		{"widget2s", "Widget2s"},
		{"widget_v2s", "WidgetV2s"},
		{"ärgers", "Ärgers"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := n.Camelize(tt.in); got != tt.want {
				t.Errorf("Camelize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
