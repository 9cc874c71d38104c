package restaurant

import "testing"

func TestBuildMinRatingQuery(t *testing.T) {
	if got := buildMinRatingQuery(3.5); got != "@averageRating:[3.5 +inf]" {
		t.Errorf("unexpected query %q", got)
	}
	if got := buildMinRatingQuery(0); got != "@averageRating:[0 +inf]" {
		t.Errorf("unexpected query %q", got)
	}
}

func TestBuildTextQuery(t *testing.T) {
	got := buildTextQuery("wood pizza", 4)
	want := "(@name:(%wood% %pizza%) | @cuisineType:(%wood% %pizza%)) @averageRating:[4 +inf]"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBuildTextQuery_BlankFallsBackToFloor(t *testing.T) {
	if got := buildTextQuery("   ", 2); got != "@averageRating:[2 +inf]" {
		t.Errorf("unexpected query %q", got)
	}
}

func TestBuildTextQuery_EscapesSyntaxCharacters(t *testing.T) {
	got := buildTextQuery("fish-n-chips", 0)
	want := `(@name:(%fish\-n\-chips%) | @cuisineType:(%fish\-n\-chips%)) @averageRating:[0 +inf]`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBuildGeoQuery(t *testing.T) {
	got := buildGeoQuery(51.5032, -0.1196, 3)
	want := "@geoLocation:[-0.1196 51.5032 3 km]"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestIndexDefinition(t *testing.T) {
	def := IndexDefinition("savora:")

	if def.Name != "savora:restaurants:idx" {
		t.Errorf("unexpected index name %q", def.Name)
	}
	if len(def.Prefixes) != 1 || def.Prefixes[0] != "savora:restaurants:" {
		t.Errorf("unexpected prefixes %v", def.Prefixes)
	}
	if err := def.Validate(); err != nil {
		t.Errorf("definition must validate: %v", err)
	}

	aliases := make(map[string]bool)
	for _, f := range def.Fields {
		aliases[f.Alias] = true
	}
	for _, want := range []string{"name", "cuisineType", "averageRating", "geoLocation"} {
		if !aliases[want] {
			t.Errorf("missing indexed field %q", want)
		}
	}
}
