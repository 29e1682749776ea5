package filter

import (
	"slices"
	"testing"

	"github.com/giygas/ceassist-api/catalog/entities"
	"github.com/giygas/ceassist-api/navigation"
)

func testProducts() []entities.ProductSeries {
	return []entities.ProductSeries{
		{ID: "nipro-fb-eco", Maker: "ニプロ", Type: entities.Dialyzer, JSDTClass: entities.JSDTIa, Material: "CTA"},
		{ID: "asahi-aps-ua", Maker: "旭化成", Type: entities.Dialyzer, JSDTClass: entities.JSDTIa, Material: "PS (ポリスルホン)"},
		{ID: "toray-nv-x", Maker: "東レ", Type: entities.Dialyzer, JSDTClass: entities.JSDTIIa, Material: "PS (親水化/NVポリマー)"},
		{ID: "nikkiso-fx", Maker: "日機装 (Fresenius)", Type: entities.Dialyzer, JSDTClass: entities.JSDTIa, Material: "PS (Helixone)"},
		{ID: "nikkiso-fdx", Maker: "日機装", Type: entities.Dialyzer, JSDTClass: entities.JSDTIa, Material: "PEPA"},
		{ID: "toray-nvf-h", Maker: "東レ", Type: entities.Hemodiafilter, HDFClass: entities.HDFMediumLeakage, Material: "PS (親水化)"},
		{ID: "toray-nvf-p", Maker: "東レ", Type: entities.Hemodiafilter, HDFClass: entities.HDFHighLeakage, Material: "PS (親水化)"},
	}
}

func testDevices() []entities.ApheresisDevice {
	return []entities.ApheresisDevice{
		{ID: "sepxiris", Category: entities.CategoryCRRT, Indications: []string{"敗血症", "敗血症性ショック"}},
		{ID: "lixelle", Category: entities.CategoryColumn, Indications: []string{"透析アミロイドーシス"}},
		{ID: "adacolumn", Category: entities.CategoryDHP, Indications: []string{"潰瘍性大腸炎", "クローン病", "敗血症"}},
		{ID: "cureflo-a", Category: entities.CategoryCRRT, Indications: []string{"敗血症", "AKI"}},
	}
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, id(item))
	}
	return out
}

func productIDs(items []entities.ProductSeries) []string {
	return ids(items, func(p entities.ProductSeries) string { return p.ID })
}

func deviceIDs(items []entities.ApheresisDevice) []string {
	return ids(items, func(d entities.ApheresisDevice) string { return d.ID })
}

func TestProducts(t *testing.T) {
	testCases := []struct {
		name     string
		query    ProductQuery
		expected []string
	}{
		{"no filters returns everything", ProductQuery{},
			[]string{"nipro-fb-eco", "asahi-aps-ua", "toray-nv-x", "nikkiso-fx", "nikkiso-fdx", "toray-nvf-h", "toray-nvf-p"}},
		{"maker substring", ProductQuery{Maker: "日機装"}, []string{"nikkiso-fx", "nikkiso-fdx"}},
		{"maker exact", ProductQuery{Maker: "日機装", MakerMatch: MatchExact}, []string{"nikkiso-fdx"}},
		{"classification", ProductQuery{Classification: entities.JSDTIIa}, []string{"toray-nv-x"}},
		{"material substring", ProductQuery{Material: "PS"}, []string{"asahi-aps-ua", "toray-nv-x", "nikkiso-fx", "toray-nvf-h", "toray-nvf-p"}},
		{"conjunction", ProductQuery{Maker: "東レ", Material: "PS", ProductType: entities.Hemodiafilter}, []string{"toray-nvf-h", "toray-nvf-p"}},
		{"hdf class", ProductQuery{ProductType: entities.Hemodiafilter, HDFClass: entities.HDFHighLeakage}, []string{"toray-nvf-p"}},
		{"verbatim matching", ProductQuery{Material: "ps"}, []string{}},
		{"no match", ProductQuery{Maker: "バクスター"}, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := productIDs(Products(testProducts(), tc.query))
			if !slices.Equal(got, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestProductsMatchEveryPredicate(t *testing.T) {
	q := ProductQuery{Maker: "東", Material: "PS", ProductType: entities.Hemodiafilter}
	got := Products(testProducts(), q)

	for _, p := range testProducts() {
		included := slices.ContainsFunc(got, func(g entities.ProductSeries) bool { return g.ID == p.ID })
		if included != q.matches(p) {
			t.Errorf("%s: included=%v but matches=%v", p.ID, included, q.matches(p))
		}
	}
}

func TestDevices(t *testing.T) {
	testCases := []struct {
		name     string
		query    DeviceQuery
		expected []string
	}{
		{"category", DeviceQuery{Category: entities.CategoryCRRT}, []string{"sepxiris", "cureflo-a"}},
		{"column", DeviceQuery{Category: entities.CategoryColumn}, []string{"lixelle"}},
		{"disease substring", DeviceQuery{Disease: "敗血症"}, []string{"sepxiris", "adacolumn", "cureflo-a"}},
		{"disease partial", DeviceQuery{Disease: "ショック"}, []string{"sepxiris"}},
		{"category and disease", DeviceQuery{Category: entities.CategoryDHP, Disease: "敗血症"}, []string{"adacolumn"}},
		{"empty result", DeviceQuery{Category: entities.CategoryPE}, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := deviceIDs(Devices(testDevices(), tc.query))
			if !slices.Equal(got, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestProductListing(t *testing.T) {
	testCases := []struct {
		name     string
		state    navigation.State
		ready    bool
		expected []string
	}{
		{"search not executed", navigation.State{View: navigation.HemodialysisMenu, Filters: navigation.Filters{Maker: "東レ"}}, false, []string{}},
		{"search without filters is the full catalog", navigation.State{View: navigation.HemodialysisMenu, SearchActive: true}, true,
			productIDs(testProducts())},
		{"search uses maker substring", navigation.State{View: navigation.HemodialysisMenu, SearchActive: true, Filters: navigation.Filters{Maker: "日機装"}}, true,
			[]string{"nikkiso-fx", "nikkiso-fdx"}},
		{"manufacturer needs a maker", navigation.State{View: navigation.ManufacturerBrowser}, false, []string{}},
		{"manufacturer uses exact maker", navigation.State{View: navigation.ManufacturerBrowser, Filters: navigation.Filters{Maker: "日機装"}}, true,
			[]string{"nikkiso-fdx"}},
		{"classification", navigation.State{View: navigation.ClassificationBrowser, Filters: navigation.Filters{Classification: entities.JSDTIIa}}, true,
			[]string{"toray-nv-x"}},
		{"classification chosen but empty", navigation.State{View: navigation.ClassificationBrowser, Filters: navigation.Filters{Classification: entities.JSDTS}}, true,
			[]string{}},
		{"treatment all hdf", navigation.State{View: navigation.TreatmentBrowser, Filters: navigation.Filters{ProductType: entities.Hemodiafilter}}, true,
			[]string{"toray-nvf-h", "toray-nvf-p"}},
		{"treatment hdf class", navigation.State{View: navigation.TreatmentBrowser, Filters: navigation.Filters{ProductType: entities.Hemodiafilter, HDFClass: entities.HDFMediumLeakage}}, true,
			[]string{"toray-nvf-h"}},
		{"device view", navigation.State{View: navigation.ApheresisList, Filters: navigation.Filters{Category: entities.CategoryPE}}, false, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			listing := ProductListing(testProducts(), tc.state)
			if listing.Ready != tc.ready {
				t.Errorf("Expected ready %v, got %v", tc.ready, listing.Ready)
			}
			if listing.Items == nil {
				t.Error("Expected non-nil items")
			}
			if got := productIDs(listing.Items); !slices.Equal(got, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestDeviceListing(t *testing.T) {
	disease := DeviceListing(testDevices(), navigation.State{View: navigation.DiseaseBrowser, Filters: navigation.Filters{Disease: "アミロイド"}})
	if !disease.Ready || !slices.Equal(deviceIDs(disease.Items), []string{"lixelle"}) {
		t.Errorf("Unexpected disease listing %+v", disease)
	}

	noChoice := DeviceListing(testDevices(), navigation.State{View: navigation.DiseaseBrowser})
	if noChoice.Ready || len(noChoice.Items) != 0 {
		t.Errorf("Expected not-ready listing, got %+v", noChoice)
	}

	columns := DeviceListing(testDevices(), navigation.Reduce(navigation.State{View: navigation.HemodialysisMenu}, navigation.Navigate(navigation.ColumnList)))
	if !columns.Ready || !slices.Equal(deviceIDs(columns.Items), []string{"lixelle"}) {
		t.Errorf("Unexpected column listing %+v", columns)
	}

	empty := DeviceListing(testDevices(), navigation.State{View: navigation.ApheresisList, Filters: navigation.Filters{Category: entities.CategoryCART}})
	if !empty.Ready || len(empty.Items) != 0 {
		t.Errorf("Expected ready empty listing, got %+v", empty)
	}
}

func TestOptions(t *testing.T) {
	makers := Makers(testProducts())
	expectedMakers := []string{"ニプロ", "旭化成", "東レ", "日機装 (Fresenius)", "日機装"}
	if !slices.Equal(makers, expectedMakers) {
		t.Errorf("Expected %v, got %v", expectedMakers, makers)
	}

	materials := Materials(testProducts())
	expectedMaterials := []string{"CTA", "PS", "PEPA"}
	if !slices.Equal(materials, expectedMaterials) {
		t.Errorf("Expected %v, got %v", expectedMaterials, materials)
	}

	diseases := Diseases(testDevices())
	expectedDiseases := []string{"敗血症", "敗血症性ショック", "透析アミロイドーシス", "潰瘍性大腸炎", "クローン病", "AKI"}
	if !slices.Equal(diseases, expectedDiseases) {
		t.Errorf("Expected %v, got %v", expectedDiseases, diseases)
	}

	opts := BuildOptions(testProducts(), testDevices())
	if len(opts.JSDTClasses) != 6 || len(opts.HDFClasses) != 3 || len(opts.TherapyCategories) != 6 {
		t.Errorf("Unexpected fixed option lists %+v", opts)
	}
}
