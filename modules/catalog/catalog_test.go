package catalog

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCatalog(t *testing.T) {

	Convey("Given the bundled catalog", t, func() {
		module := Default()

		So(module.Len(), ShouldEqual, 15)

		Convey("Products are found by id", func() {
			p, err := module.FindId("1")
			So(err, ShouldBeNil)
			So(p.Title, ShouldStartWith, "Sony")
			So(p.Maker(), ShouldEqual, "Sony")

			_, err = module.FindId("404")
			So(err, ShouldEqual, ErrProductNotFound)
		})

		Convey("Products are found by slug", func() {
			p, err := module.FindSlug("samsung-galaxy-buds2")
			So(err, ShouldBeNil)
			So(p.Id, ShouldEqual, "6")
			So(p.Slug(), ShouldEqual, "samsung-galaxy-buds2")

			_, err = module.FindSlug("galaxy")
			So(err, ShouldEqual, ErrProductNotFound)
		})

		Convey("A product becomes a cart item with catalog data", func() {
			p, _ := module.FindId("7")
			item := p.Item()

			So(item.Id, ShouldEqual, "7")
			So(item.Title, ShouldEqual, "Atomic Habits")
			So(item.Price, ShouldEqual, 499)
			So(item.Validate(), ShouldBeNil)
		})

		Convey("Facets list categories and brands", func() {
			So(module.Categories(), ShouldResemble, []string{"Electronics", "Shoes", "Clothing", "Books"})
			So(module.Brands(), ShouldContain, "Nike")
			So(module.Brands(), ShouldContain, "Penguin")
			So(module.Brands()[0], ShouldEqual, "Adidas")
		})

		Convey("Listings are capped at nine products", func() {
			page := module.Find(Filter{})
			So(page.Total, ShouldEqual, 15)
			So(page.List, ShouldHaveLength, DefaultLimit)
		})

		Convey("Search ignores case", func() {
			So(module.Search("SONY", 0), ShouldHaveLength, 3)
			So(module.Search("galaxy", 1).Ids(), ShouldResemble, []string{"2"})
			So(module.Search("no such thing", 0), ShouldBeEmpty)
		})

		Convey("FindList skips unknown ids", func() {
			So(module.FindList("3", "nope", "1").Ids(), ShouldResemble, []string{"3", "1"})
		})

		Convey("All returns a copy", func() {
			list := module.All()
			list[0].Title = "changed"
			p, _ := module.FindId(list[0].Id)
			So(p.Title, ShouldNotEqual, "changed")
		})
	})

	Convey("Catalog files are validated", t, func() {
		for _, data := range []string{
			`not json`,
			`[{"id":"","title":"x","price":1}]`,
			`[{"id":"a","title":"x","price":-1}]`,
			`[{"id":"a","title":"x","price":1},{"id":"a","title":"y","price":2}]`,
		} {
			_, err := Load(strings.NewReader(data))
			So(errors.Is(err, ErrInvalidCatalog), ShouldBeTrue)
		}
	})

	Convey("A catalog can be opened from disk", t, func() {
		path := filepath.Join(t.TempDir(), "products.json")
		err := os.WriteFile(path, []byte(`[{"id":"x1","title":"Puma Cap","price":799,"category":"Clothing"}]`), 0600)
		So(err, ShouldBeNil)

		module, err := Open(path)
		So(err, ShouldBeNil)
		So(module.Len(), ShouldEqual, 1)
		So(module.Brands(), ShouldResemble, []string{"Puma"})

		_, err = Open(filepath.Join(t.TempDir(), "missing.json"))
		So(err, ShouldNotBeNil)
	})
}

func TestFilter(t *testing.T) {
	module := Default()

	var tests = []struct {
		query string
		ids   []string
		total int
	}{
		{"", nil, 15},
		{"category=All", nil, 15},
		{"category=Books", []string{"7", "8", "14"}, 3},
		{"category=Books&category=Shoes", []string{"3", "7", "8", "9", "13", "14"}, 6},
		{"brand=Nike", []string{"3", "4", "9"}, 3},
		{"brand=Nike&dropdown=5000%2B", []string{"9"}, 1},
		{"category=Electronics&price=0-5000", []string{"11"}, 1},
		{"dropdown=500-999", []string{}, 0},
		{"dropdown=0-499", []string{"7", "8", "14"}, 3},
		{"dropdown=1000-1999&category=Clothing", []string{"4", "15"}, 2},
		{"q=nike&limit=2", []string{"3", "4"}, 3},
		{"brand=Sony&brand=Samsung&price=5000-20000", []string{"2", "6", "12"}, 3},
	}

	for _, test := range tests {
		values, _ := url.ParseQuery(test.query)
		f, err := ParseFilter(values)
		if err != nil {
			t.Errorf("%q: unexpected error %v", test.query, err)
			continue
		}

		page := module.Find(f)
		if page.Total != test.total {
			t.Errorf("%q: total %d, want %d", test.query, page.Total, test.total)
		}
		if test.ids == nil {
			continue
		}
		ids := page.List.Ids()
		if strings.Join(ids, ",") != strings.Join(test.ids, ",") {
			t.Errorf("%q: got %v, want %v", test.query, ids, test.ids)
		}
	}
}

func TestParseFilterRejects(t *testing.T) {
	for _, query := range []string{
		"price=abc",
		"price=500",
		"price=900-100",
		"dropdown=cheap",
		"dropdown=-5+",
		"limit=-1",
		"limit=many",
	} {
		values, _ := url.ParseQuery(query)
		if _, err := ParseFilter(values); !errors.Is(err, ErrInvalidFilter) {
			t.Errorf("%q: expected invalid filter, got %v", query, err)
		}
	}
}

func TestBand(t *testing.T) {
	var tests = []struct {
		in    string
		price float64
		match bool
	}{
		{"0-499", 499, true},
		{"0-499", 500, false},
		{"5000+", 5000, true},
		{"5000+", 4999.99, false},
		{"1000-1999", 999, false},
	}

	for _, test := range tests {
		b, err := ParseBand(test.in)
		if err != nil {
			t.Fatalf("%q: %v", test.in, err)
		}
		if b.Contains(test.price) != test.match {
			t.Errorf("%q contains %v = %v", test.in, test.price, !test.match)
		}
		if b.String() != test.in {
			t.Errorf("%q formats as %q", test.in, b.String())
		}
	}
}
