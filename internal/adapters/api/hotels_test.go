package api_test

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"hotel_booking/internal/apitest"
	"hotel_booking/internal/domain"
)

var coreSearchKeys = []string{"destination", "checkIn", "checkOut", "adultCount", "childCount", "page"}

func TestSearchHotels_EmptyParamsSendsSixEmptyScalars(t *testing.T) {
	fake := apitest.NewServer(t)
	fake.RespondJSON("GET", "/api/hotels/search", http.StatusOK, domain.HotelSearchResponse{
		Data:       []domain.Hotel{{ID: "h1", Name: "Sea View"}},
		Pagination: domain.Pagination{Total: 1, Page: 1, Pages: 1},
	})
	cl := newClient(t, fake)

	out, err := cl.SearchHotels(testCtx(t), domain.SearchParams{})
	if err != nil {
		t.Fatalf("SearchHotels: %v", err)
	}
	if len(out.Data) != 1 || out.Data[0].Name != "Sea View" || out.Pagination.Pages != 1 {
		t.Fatalf("unexpected result: %+v", out)
	}

	last, _ := fake.Last()
	want := "destination=&checkIn=&checkOut=&adultCount=&childCount=&page="
	if last.RawQuery != want {
		t.Fatalf("query: got %q want %q", last.RawQuery, want)
	}
	q := last.Query()
	if len(q) != len(coreSearchKeys) {
		t.Fatalf("expected %d keys, got %v", len(coreSearchKeys), q)
	}
	for _, k := range coreSearchKeys {
		if vs := q[k]; len(vs) != 1 || vs[0] != "" {
			t.Fatalf("%s: got %v", k, vs)
		}
	}
}

func TestSearchHotels_RepeatedFiltersKeepOrder(t *testing.T) {
	fake := apitest.NewServer(t)
	fake.RespondJSON("GET", "/api/hotels/search", http.StatusOK, domain.HotelSearchResponse{})
	cl := newClient(t, fake)

	_, err := cl.SearchHotels(testCtx(t), domain.SearchParams{
		Destination: "Lisbon",
		Facilities:  []string{"wifi", "pool"},
		Stars:       []string{"3"},
	})
	if err != nil {
		t.Fatalf("SearchHotels: %v", err)
	}
	last, _ := fake.Last()
	q := last.Query()
	if got := q["facilities"]; !reflect.DeepEqual(got, []string{"wifi", "pool"}) {
		t.Fatalf("facilities: %v", got)
	}
	if got := q["stars"]; !reflect.DeepEqual(got, []string{"3"}) {
		t.Fatalf("stars: %v", got)
	}
	if _, ok := q["types"]; ok {
		t.Fatalf("types must be omitted when empty")
	}
	if q.Get("destination") != "Lisbon" {
		t.Fatalf("destination: %q", q.Get("destination"))
	}
	for _, k := range coreSearchKeys {
		if _, ok := q[k]; !ok {
			t.Fatalf("missing scalar %s", k)
		}
	}
	if !strings.HasSuffix(last.RawQuery, "&facilities=wifi&facilities=pool&stars=3") {
		t.Fatalf("repeated entries out of order: %q", last.RawQuery)
	}
	if len(last.Cookies) != 0 {
		t.Fatalf("search must not send cookies")
	}
}

func TestUpdateMyHotel_TargetsHotelIDFromForm(t *testing.T) {
	fake := apitest.NewServer(t)
	fake.RespondJSON("PUT", "/api/my-hotels/{id}", http.StatusOK, domain.Hotel{ID: "abc123", Name: "Renamed"})
	cl := newClient(t, fake)

	form := domain.HotelForm{
		HotelID:    "abc123",
		Name:       "Renamed",
		Facilities: []string{"Spa"},
		ImageFiles: []domain.FormFile{{Filename: "front.jpg", ContentType: "image/jpeg", Content: []byte{0xff, 0xd8}}},
	}.FormData()

	h, err := cl.UpdateMyHotel(testCtx(t), form)
	if err != nil {
		t.Fatalf("UpdateMyHotel: %v", err)
	}
	if h.ID != "abc123" || h.Name != "Renamed" {
		t.Fatalf("unexpected hotel: %+v", h)
	}
	last, _ := fake.Last()
	if last.Path != "/api/my-hotels/abc123" || last.ID != "abc123" {
		t.Fatalf("unexpected target: %s", last.Path)
	}

	fields, files := readMultipart(t, last)
	if fields["hotelId"] != "abc123" || fields["name"] != "Renamed" || fields["facilities[0]"] != "Spa" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if string(files["imageFiles"]) != string([]byte{0xff, 0xd8}) {
		t.Fatalf("unexpected file part: %v", files)
	}
}

func TestAddMyHotel_SendsMultipartAndReturnsHotel(t *testing.T) {
	fake := apitest.NewServer(t)
	fake.RespondJSON("POST", "/api/my-hotels", http.StatusCreated, domain.Hotel{ID: "new1", Name: "Sea View", StarRating: 4})
	cl := newClient(t, fake)

	h, err := cl.AddMyHotel(testCtx(t), domain.HotelForm{Name: "Sea View", StarRating: 4, PricePerNight: 120.5}.FormData())
	if err != nil {
		t.Fatalf("AddMyHotel: %v", err)
	}
	if h.ID != "new1" || h.StarRating != 4 {
		t.Fatalf("unexpected hotel: %+v", h)
	}
	last, _ := fake.Last()
	fields, _ := readMultipart(t, last)
	if _, ok := fields["hotelId"]; ok {
		t.Fatalf("create must not send hotelId")
	}
	if fields["pricePerNight"] != "120.5" || fields["starRating"] != "4" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

func TestHotelLookups(t *testing.T) {
	fake := apitest.NewServer(t)
	fake.RespondJSON("GET", "/api/hotels", http.StatusOK, []domain.Hotel{{ID: "a"}, {ID: "b"}})
	fake.RespondJSON("GET", "/api/hotels/{id}", http.StatusOK, domain.Hotel{ID: "a", City: "Porto"})
	fake.RespondJSON("GET", "/api/my-hotels", http.StatusOK, []domain.Hotel{{ID: "mine"}})
	fake.RespondJSON("GET", "/api/my-hotels/{id}", http.StatusOK, domain.Hotel{ID: "mine", Country: "PT"})
	cl := newClient(t, fake)
	ctx := testCtx(t)

	all, err := cl.Hotels(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("Hotels: %v %+v", err, all)
	}
	one, err := cl.HotelByID(ctx, "a")
	if err != nil || one.City != "Porto" {
		t.Fatalf("HotelByID: %v %+v", err, one)
	}
	mine, err := cl.MyHotels(ctx)
	if err != nil || len(mine) != 1 {
		t.Fatalf("MyHotels: %v %+v", err, mine)
	}
	m, err := cl.MyHotelByID(ctx, "mine")
	if err != nil || m.Country != "PT" {
		t.Fatalf("MyHotelByID: %v %+v", err, m)
	}
	last, _ := fake.Last()
	if last.Path != "/api/my-hotels/mine" {
		t.Fatalf("unexpected path: %s", last.Path)
	}
}

func readMultipart(t *testing.T, r apitest.Request) (map[string]string, map[string][]byte) {
	t.Helper()
	mt, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mt != "multipart/form-data" {
		t.Fatalf("content type %q: %v", r.Header.Get("Content-Type"), err)
	}
	mr := multipart.NewReader(bytes.NewReader(r.Body), params["boundary"])
	fields := map[string]string{}
	files := map[string][]byte{}
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next part: %v", err)
		}
		b, _ := io.ReadAll(p)
		if p.FileName() != "" {
			files[p.FormName()] = b
			continue
		}
		fields[p.FormName()] = string(b)
	}
	return fields, files
}
