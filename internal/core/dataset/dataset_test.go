package dataset

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-finder/internal/core/parser"
)

const rawFixture = `recipe_name,prep_time,ingredients,directions,nutrition,total_time,cuisine_path,img_src
Veggie Omelette,5 mins,"['2 Eggs', 'Spinach', '1 cup Milk']","['Whisk eggs', 'Cook in pan']","Total Fat 12g, Sodium 430mg, Protein 8g",10 mins,/Breakfast/Eggs/,http://img/omelette.jpg
Beef Stew,20 mins,"Beef, Carrots, Potatoes","Brown beef. Simmer.","Total Fat 20g 25%, Sodium 1,240mg, Protein 30g",1 hr 30 mins,/Main Dish/Stew/,
,,,,,,,
`

func TestReadRawCSV(t *testing.T) {
	raw, err := ReadRawCSV(strings.NewReader(rawFixture))
	require.NoError(t, err)
	require.Len(t, raw, 3)

	assert.Equal(t, "Veggie Omelette", raw[0].Name)
	assert.Equal(t, "['2 Eggs', 'Spinach', '1 cup Milk']", raw[0].Ingredients)
	assert.Equal(t, "10 mins", raw[0].TotalTime)
	assert.Equal(t, "/Breakfast/Eggs/", raw[0].CuisinePath)
	assert.Equal(t, "", raw[1].Image)
	assert.Equal(t, RawRecord{}, raw[2])
}

func TestReadRawCSVMissingColumns(t *testing.T) {
	raw, err := ReadRawCSV(strings.NewReader("recipe_name\nToast\n"))
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, RawRecord{Name: "Toast"}, raw[0])
}

func TestReadRawCSVEmpty(t *testing.T) {
	raw, err := ReadRawCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestBuild(t *testing.T) {
	raw, err := ReadRawCSV(strings.NewReader(rawFixture))
	require.NoError(t, err)

	records := Build(raw)
	require.Len(t, records, len(raw))

	omelette := records[0]
	assert.Equal(t, "Veggie Omelette", omelette.Name)
	assert.Equal(t, 10, omelette.TotalTimeMinutes)
	assert.Equal(t, []string{"2 eggs", "spinach", "1 cup milk"}, omelette.Ingredients)
	assert.Equal(t, []string{"whisk eggs", "cook in pan"}, omelette.Directions)
	assert.Equal(t, 12.0, omelette.Nutrient(parser.NutrientFat))
	assert.Equal(t, 8.0, omelette.Nutrient(parser.NutrientProtein))
	assert.Equal(t,
		"Veggie Omelette ['2 Eggs', 'Spinach', '1 cup Milk'] ['Whisk eggs', 'Cook in pan'] /Breakfast/Eggs/",
		omelette.SearchText)

	stew := records[1]
	assert.Equal(t, 90, stew.TotalTimeMinutes)
	assert.Equal(t, []string{"beef", "carrots", "potatoes"}, stew.Ingredients)
	assert.Equal(t, 1240.0, stew.Nutrient(parser.NutrientSodium))

	empty := records[2]
	assert.Equal(t, 0, empty.TotalTimeMinutes)
	assert.Empty(t, empty.Ingredients)
	assert.Empty(t, empty.Nutrients)
	assert.Equal(t, "   ", empty.SearchText)
}

func TestBuildPreservesCountWithEmptyFields(t *testing.T) {
	raw := make([]RawRecord, 25)
	raw[7] = RawRecord{Name: "Only One"}

	records := Build(raw)
	require.Len(t, records, 25)
	assert.Equal(t, "Only One", records[7].Name)
}

func TestCleanCSVRoundTrip(t *testing.T) {
	raw, err := ReadRawCSV(strings.NewReader(rawFixture))
	require.NoError(t, err)
	records := Build(raw)
	records[0].Ingredients = append(records[0].Ingredients, "salt & pepper")

	var buf bytes.Buffer
	require.NoError(t, WriteCleanCSV(&buf, records))

	header := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.Equal(t, strings.Join(CleanColumns, ","), header)

	loaded, err := ReadCleanCSV(&buf)
	require.NoError(t, err)
	require.Len(t, loaded, len(records))

	for i := range records {
		assert.Equal(t, records[i].Name, loaded[i].Name)
		assert.Equal(t, records[i].TotalTimeMinutes, loaded[i].TotalTimeMinutes)
		assert.Equal(t, records[i].Ingredients, loaded[i].Ingredients)
		assert.Equal(t, records[i].Directions, loaded[i].Directions)
		assert.Equal(t, records[i].Nutrients, loaded[i].Nutrients)
		assert.Equal(t, records[i].SearchText, loaded[i].SearchText)
	}
}

func TestWriteCleanCSVEmptyNutrientCell(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCleanCSV(&buf, []Record{{
		Name:      "Plain",
		Nutrients: map[string]float64{parser.NutrientProtein: 4},
	}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `Plain,0,[],[],,,,,,,,4,,,,,,`, lines[1])
}

func TestReadCleanCSVCoercesNumbers(t *testing.T) {
	input := "recipe_name,total_time,ingredients_list,fat,protein,sodium,text\n" +
		"Odd,abc,\"['a', 'b']\",-3,x,12.5,odd text\n"

	records, err := ReadCleanCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 0, rec.TotalTimeMinutes)
	assert.Equal(t, []string{"a", "b"}, rec.Ingredients)
	assert.Equal(t, []string{}, rec.Directions)
	assert.Equal(t, 0.0, rec.Nutrient(parser.NutrientFat))
	assert.Equal(t, 0.0, rec.Nutrient(parser.NutrientProtein))
	assert.Equal(t, 12.5, rec.Nutrient(parser.NutrientSodium))
	assert.Equal(t, 0.0, rec.Nutrient(parser.NutrientIron))
	assert.Equal(t, "odd text", rec.SearchText)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "recipes.csv")
	out := filepath.Join(dir, "recipes_clean.csv")
	require.NoError(t, os.WriteFile(in, []byte(rawFixture), 0644))

	stats, err := Run(context.Background(), in, out)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.InputRecords)
	assert.Equal(t, 3, stats.OutputRecords)
	assert.True(t, filepath.IsAbs(stats.OutputPath))

	loaded, err := LoadFile(out)
	require.NoError(t, err)
	assert.Len(t, loaded, 3)
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := Run(context.Background(), filepath.Join(dir, "missing.csv"), filepath.Join(dir, "out.csv"))
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "out.csv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
