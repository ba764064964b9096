package pagination

import "testing"

func TestPaginateClampsPage(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantLen     int
		wantFirst   int
		wantTotalPg int
	}{
		{name: "first page", page: 1, perPage: 20, wantPage: 1, wantLen: 20, wantFirst: 0, wantTotalPg: 3},
		{name: "last partial page", page: 3, perPage: 20, wantPage: 3, wantLen: 5, wantFirst: 40, wantTotalPg: 3},
		{name: "page beyond range", page: 9, perPage: 20, wantPage: 3, wantLen: 5, wantFirst: 40, wantTotalPg: 3},
		{name: "page below range", page: -4, perPage: 20, wantPage: 1, wantLen: 20, wantFirst: 0, wantTotalPg: 3},
		{name: "default per page", page: 2, perPage: 0, wantPage: 2, wantLen: 20, wantFirst: 20, wantTotalPg: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.page, tt.perPage)
			if got.CurrentPage != tt.wantPage {
				t.Fatalf("current page = %d, want %d", got.CurrentPage, tt.wantPage)
			}
			if len(got.Items) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got.Items), tt.wantLen)
			}
			if got.Items[0] != tt.wantFirst {
				t.Fatalf("first = %d, want %d", got.Items[0], tt.wantFirst)
			}
			if got.TotalPages != tt.wantTotalPg || got.TotalItems != 45 {
				t.Fatalf("unexpected totals %+v", got)
			}
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	got := Paginate([]string{}, 5, 10)
	if got.CurrentPage != 1 || got.TotalPages != 0 || got.TotalItems != 0 || len(got.Items) != 0 {
		t.Fatalf("unexpected empty page %+v", got)
	}
}

func TestPaginateDoesNotAlias(t *testing.T) {
	items := []int{1, 2, 3}
	got := Paginate(items, 1, 2)
	got.Items[0] = 99
	if items[0] != 1 {
		t.Fatal("page items alias the input slice")
	}
}
