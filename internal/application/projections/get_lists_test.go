package projections

import (
	"context"
	"net/url"
	"testing"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/listutil"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/club"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/invoice"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/lesson"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/player"
)

func TestQueryGetClubList_LocalSearch(t *testing.T) {
	m := &mockAPI{clubs: []club.Club{
		{ID: 1, Name: "Riverside", City: strPtr("London")},
		{ID: 2, Name: "Hilltop", Email: strPtr("info@hilltop.test")},
		{ID: 3, Name: "Seaside", Phone: strPtr("0207")},
	}}
	deps := GetClubListDeps{API: m, Tokens: mockTokens{}}

	tests := []struct {
		search string
		want   []int
	}{
		{"", []int{1, 2, 3}},
		{"  LONDON ", []int{1}},
		{"hilltop.test", []int{2}},
		{"0207", []int{3}},
		{"side", []int{1, 3}},
		{"nothing", nil},
	}
	for _, tt := range tests {
		res, err := QueryGetClubList(context.Background(), GetClubListQuery{Search: tt.search}, deps)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.search, err)
		}
		var got []int
		for _, c := range res.Clubs {
			got = append(got, c.ID)
		}
		if len(got) != len(tt.want) {
			t.Errorf("%q: got %v, want %v", tt.search, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: got %v, want %v", tt.search, got, tt.want)
				break
			}
		}
		if res.Total != 3 {
			t.Errorf("%q: total = %d", tt.search, res.Total)
		}
	}
}

func TestQueryGetPlayerList_ForwardsSearchAndPages(t *testing.T) {
	m := &mockAPI{players: []player.Player{{ID: 1}}, total: intPtr(120)}
	lp := listutil.ParseListParams(url.Values{"q": {" ana "}, "page": {"2"}}, nil)

	res, err := QueryGetPlayerList(context.Background(), GetPlayerListQuery{List: lp}, GetPlayerListDeps{API: m, Tokens: mockTokens{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.playerQuery.Search != "ana" || m.playerQuery.Page != 2 || m.playerQuery.Size != listutil.DefaultSize {
		t.Errorf("player query = %+v", m.playerQuery)
	}
	if res.Page.TotalPages != 3 || res.Page.Page != 2 {
		t.Errorf("page info = %+v", res.Page)
	}
	if got := res.Page.URL(3); got != "?page=3&q=ana" {
		t.Errorf("URL(3) = %q", got)
	}
}

func TestQueryGetLessonList_Filters(t *testing.T) {
	m := &mockAPI{lessons: []lesson.Lesson{{ID: 1}}}
	q := url.Values{"date_from": {"2024-01-01"}, "status": {"set"}, "payment_status": {""}, "bogus": {"x"}}
	lp := listutil.ParseListParams(q, LessonFilterKeys)

	res, err := QueryGetLessonList(context.Background(), GetLessonListQuery{List: lp}, GetLessonListDeps{API: m, Tokens: mockTokens{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lq := m.lessonQuery
	if lq.DateFrom != "2024-01-01" || lq.Status != "set" || lq.PaymentStatus != "" || lq.DateTo != "" {
		t.Errorf("lesson query = %+v", lq)
	}
	if res.Filters.Get("status") != "set" || res.Filters.Get("bogus") != "" {
		t.Errorf("filters = %+v", res.Filters)
	}
	if res.Page.Total != 1 {
		t.Errorf("total = %d", res.Page.Total)
	}
}

func TestQueryGetInvoiceList_StatusFilter(t *testing.T) {
	m := &mockAPI{invoices: []invoice.Invoice{{ID: 4}}}
	lp := listutil.ParseListParams(url.Values{"status": {"paid"}}, InvoiceFilterKeys)

	res, err := QueryGetInvoiceList(context.Background(), GetInvoiceListQuery{List: lp}, GetInvoicesDeps{API: m, Tokens: mockTokens{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.invoiceQuery.Status != "paid" || m.invoiceQuery.Size != 50 {
		t.Errorf("invoice query = %+v", m.invoiceQuery)
	}
	if res.Status != "paid" || len(res.Invoices) != 1 {
		t.Errorf("result = %+v", res)
	}

	inv, err := QueryGetInvoice(context.Background(), GetInvoiceQuery{InvoiceID: 9}, GetInvoicesDeps{API: m, Tokens: mockTokens{}})
	if err != nil || inv.ID != 9 {
		t.Errorf("invoice = %+v err = %v", inv, err)
	}
}
