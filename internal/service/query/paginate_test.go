package query

import "testing"

func intRange(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPaginateDefaults(t *testing.T) {
	page := Paginate(intRange(25), 0, 0)

	if page.Page != 1 || page.Size != DefaultPageSize {
		t.Fatalf("expected page 1 size %d, got page %d size %d", DefaultPageSize, page.Page, page.Size)
	}
	if len(page.Items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(page.Items))
	}
	if page.TotalItems != 25 || page.TotalPages != 3 {
		t.Fatalf("expected 25 items over 3 pages, got %d over %d", page.TotalItems, page.TotalPages)
	}
	if !page.HasNext || page.HasPrevious {
		t.Fatalf("first page should have next but not previous")
	}
}

func TestPaginateNegativeInputEqualsDefaults(t *testing.T) {
	items := intRange(25)
	defaulted := Paginate(items, 1, 10)
	negative := Paginate(items, -3, -7)

	if negative.Page != defaulted.Page || negative.Size != defaulted.Size ||
		negative.TotalPages != defaulted.TotalPages || len(negative.Items) != len(defaulted.Items) {
		t.Fatalf("negative input should sanitize to the defaults: got %+v want %+v", negative, defaulted)
	}
}

func TestPaginateSizeCapped(t *testing.T) {
	page := Paginate(intRange(250), 1, 500)

	if page.Size != MaxPageSize {
		t.Fatalf("expected size capped at %d, got %d", MaxPageSize, page.Size)
	}
	if len(page.Items) != MaxPageSize {
		t.Fatalf("expected %d items, got %d", MaxPageSize, len(page.Items))
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", page.TotalPages)
	}
}

func TestPaginateEmptyDataset(t *testing.T) {
	page := Paginate([]string{}, 1, 10)

	if page.TotalItems != 0 {
		t.Fatalf("expected zero total items, got %d", page.TotalItems)
	}
	if page.TotalPages != 1 {
		t.Fatalf("empty dataset should report one page, got %d", page.TotalPages)
	}
	if page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %v", page.Items)
	}
	if page.HasNext || page.HasPrevious {
		t.Fatalf("empty dataset should have neither next nor previous")
	}
}

func TestPaginatePastEndKeepsMetadata(t *testing.T) {
	page := Paginate(intRange(15), 9, 10)

	if len(page.Items) != 0 {
		t.Fatalf("page past the end should be empty, got %d items", len(page.Items))
	}
	if page.TotalItems != 15 || page.TotalPages != 2 {
		t.Fatalf("metadata must describe the true dataset: got %d items over %d pages", page.TotalItems, page.TotalPages)
	}
	if page.HasNext {
		t.Fatalf("page past the end cannot have a next page")
	}
	if !page.HasPrevious {
		t.Fatalf("page past the end should report a previous page")
	}
}

func TestPaginateLastPartialPage(t *testing.T) {
	page := Paginate(intRange(25), 3, 10)

	if len(page.Items) != 5 {
		t.Fatalf("expected 5 items on the last page, got %d", len(page.Items))
	}
	if page.HasNext || !page.HasPrevious {
		t.Fatalf("last page should have previous but not next")
	}
	if page.Items[0] != 20 {
		t.Fatalf("expected last page to start at 20, got %d", page.Items[0])
	}
}

func TestPaginatePagesConcatenateToDataset(t *testing.T) {
	items := intRange(37)
	size := 7

	var collected []int
	for p := 1; ; p++ {
		page := Paginate(items, p, size)
		collected = append(collected, page.Items...)
		if !page.HasNext {
			break
		}
	}

	if len(collected) != len(items) {
		t.Fatalf("pages must concatenate to the full dataset: got %d of %d", len(collected), len(items))
	}
	for i, v := range collected {
		if v != items[i] {
			t.Fatalf("item %d out of order: got %d want %d", i, v, items[i])
		}
	}
}

func TestPaginateIsPure(t *testing.T) {
	items := intRange(30)
	first := Paginate(items, 2, 10)
	second := Paginate(items, 2, 10)

	if first.Items[0] != second.Items[0] || first.TotalPages != second.TotalPages {
		t.Fatalf("identical input must produce identical output")
	}
}
