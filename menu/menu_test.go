package menu

import (
	"testing"

	"class-order/models"
)

func TestCatalogIsWellFormed(t *testing.T) {
	items := Items()
	if len(items) == 0 {
		t.Fatal("catalog is empty")
	}
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it.ID] {
			t.Errorf("duplicate item id %q", it.ID)
		}
		seen[it.ID] = true
		if it.Name == "" {
			t.Errorf("item %q has no name", it.ID)
		}
		if it.Price <= 0 {
			t.Errorf("item %q has price %d", it.ID, it.Price)
		}
		switch it.Category {
		case models.CategoryMain, models.CategorySet, models.CategorySnack, models.CategoryDrink:
		default:
			t.Errorf("item %q has category %q", it.ID, it.Category)
		}
	}
}

func TestByID(t *testing.T) {
	it, ok := ByID("m1")
	if !ok {
		t.Fatal("m1 missing")
	}
	if it.Name != "大麥克" || it.Price != 78 || it.Category != models.CategoryMain {
		t.Errorf("m1 = %+v", it)
	}

	it, ok = ByID("s1")
	if !ok {
		t.Fatal("s1 missing")
	}
	if it.Price != 65 || it.Category != models.CategorySet {
		t.Errorf("s1 = %+v", it)
	}

	if _, ok := ByID("zzz"); ok {
		t.Error("ByID returned a phantom item")
	}
}

func TestByCategoryPartitionsCatalog(t *testing.T) {
	total := 0
	for _, c := range []models.Category{models.CategoryMain, models.CategorySet, models.CategorySnack, models.CategoryDrink} {
		group := ByCategory(c)
		for _, it := range group {
			if it.Category != c {
				t.Errorf("item %q in wrong group %q", it.ID, c)
			}
		}
		total += len(group)
	}
	if total != len(Items()) {
		t.Errorf("category groups cover %d of %d items", total, len(Items()))
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	items := Items()
	orig := items[0].Price
	items[0].Price = -1
	if got := Items()[0].Price; got != orig {
		t.Errorf("catalog mutated through Items(): %d", got)
	}
}
