package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  []string
	}{
		{"nil", nil, []string{}},
		{"blank", "   ", []string{}},
		{"comma separated", " Eggs, Flour ,, Milk ", []string{"eggs", "flour", "milk"}},
		{"single quoted literal", `['2 Eggs', '1 cup Flour']`, []string{"2 eggs", "1 cup flour"}},
		{"double quoted literal", `["Whisk", "Bake at 350°F"]`, []string{"whisk", "bake at 350°f"}},
		{"commas inside items", `['1 cup flour, sifted', 'salt']`, []string{"1 cup flour, sifted", "salt"}},
		{"escaped quote", `['chef\'s knife']`, []string{"chef's knife"}},
		{"numbers and none", `[1, 2.5, None, True]`, []string{"1", "2.5", "true"}},
		{"empty quoted string", `['', 'Egg', '  ']`, []string{"egg"}},
		{"trailing comma", `['a', 'b',]`, []string{"a", "b"}},
		{"empty literal", `[]`, []string{}},
		{"unterminated", "[unterminated", []string{}},
		{"unterminated string", `['egg`, []string{}},
		{"trailing garbage", `['egg'] extra`, []string{}},
		{"nested", `[['egg']]`, []string{}},
		{"string slice", []string{" Egg ", "", "MILK"}, []string{"egg", "milk"}},
		{"interface slice", []interface{}{"Egg", 2, nil}, []string{"egg", "2"}},
		{"unsupported type", 42, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseList(tt.input))
		})
	}
}

func TestParseListIdempotent(t *testing.T) {
	inputs := []interface{}{
		nil,
		"A, b ,C",
		`['1 cup Flour, sifted', ' Eggs ']`,
		`[unterminated`,
		[]string{"  Mixed Case  ", ""},
		[]interface{}{"x", 1.5},
	}

	for _, in := range inputs {
		once := ParseList(in)
		assert.Equal(t, once, ParseList(once))
	}
}

func TestParseNutrition(t *testing.T) {
	got := ParseNutrition("Total Fat 12g Sodium 430mg Protein 8g")

	assert.Equal(t, 12.0, got[NutrientFat])
	assert.Equal(t, 430.0, got[NutrientSodium])
	assert.Equal(t, 8.0, got[NutrientProtein])
	assert.NotContains(t, got, NutrientIron)
	assert.Len(t, got, 3)
}

func TestParseNutritionAllrecipesStyle(t *testing.T) {
	text := "Total Fat 18g 23%, Saturated Fat 7g 35%, Cholesterol 47mg 16%, Sodium 1,240mg 54%, " +
		"Total Carbohydrate 52g 19%, Dietary Fiber 4g 14%, Total Sugars 21g, Protein 9.5g, " +
		"Vitamin C 3mg 4%, Calcium 126mg 10%, Iron 2mg 11%, Potassium 262mg 6%"

	got := ParseNutrition(text)

	assert.Equal(t, map[string]float64{
		NutrientFat:          18,
		NutrientSatFat:       7,
		NutrientCholesterol:  47,
		NutrientSodium:       1240,
		NutrientCarbohydrate: 52,
		NutrientFiber:        4,
		NutrientSugar:        21,
		NutrientProtein:      9.5,
		NutrientVitaminC:     3,
		NutrientCalcium:      126,
		NutrientIron:         2,
		NutrientPotassium:    262,
	}, got)
}

func TestParseNutritionMissing(t *testing.T) {
	assert.Empty(t, ParseNutrition(""))
	assert.Empty(t, ParseNutrition("no numbers here"))
	assert.Empty(t, ParseNutrition("Protein"))
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"1 hr 30 mins", 90},
		{"45 mins", 45},
		{"2 hr", 120},
		{"", 0},
		{"90", 90},
		{"12.7", 12},
		{"1h5m", 65},
		{"2 Hours 10 Minutes", 130},
		{"about an hour", 0},
		{"-5", 0},
		{"soon", 0},
		{"9223372036854775807 mins 1 hr", 0},
		{"999999999999999999 hr", 0},
		{"35791394 hr", 2147483640},
		{"35791395 hr", 0},
		{"35791394 mins", 35791394},
		{"2147483647 mins 1 hr", 0},
		{"99999999999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.input))
		})
	}
}
