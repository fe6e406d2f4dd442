package domain

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
)

// FormData is an ordered multipart body: text fields and file parts in the
// order they were added.
type FormData struct {
	entries []formEntry
}

type formEntry struct {
	name  string
	value string
	file  *FormFile
}

type FormFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

func NewFormData() *FormData { return &FormData{} }

func (f *FormData) Add(name, value string) {
	f.entries = append(f.entries, formEntry{name: name, value: value})
}

// Get returns the first text value of name.
func (f *FormData) Get(name string) string {
	for _, e := range f.entries {
		if e.name == name && e.file == nil {
			return e.value
		}
	}
	return ""
}

func (f *FormData) AddFile(name string, file FormFile) {
	f.entries = append(f.entries, formEntry{name: name, file: &file})
}

// Encode writes f as multipart/form-data and returns the content type,
// boundary included.
func (f *FormData) Encode(w io.Writer) (string, error) {
	mw := multipart.NewWriter(w)
	for _, e := range f.entries {
		if e.file == nil {
			if err := mw.WriteField(e.name, e.value); err != nil {
				return "", err
			}
			continue
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, e.name, e.file.Filename))
		ct := e.file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		pw, err := mw.CreatePart(h)
		if err != nil {
			return "", err
		}
		if _, err := pw.Write(e.file.Content); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}
	return mw.FormDataContentType(), nil
}

// HotelForm is the hotel create/edit form. HotelID is empty when creating.
type HotelForm struct {
	HotelID       string
	Name          string
	City          string
	Country       string
	Description   string
	Type          string
	PricePerNight float64
	StarRating    int
	AdultCount    int
	ChildCount    int
	Facilities    []string
	ImageURLs     []string
	ImageFiles    []FormFile
}

// FormData lays h out with the field names the hotel endpoints expect.
func (h HotelForm) FormData() *FormData {
	fd := NewFormData()
	if h.HotelID != "" {
		fd.Add("hotelId", h.HotelID)
	}
	fd.Add("name", h.Name)
	fd.Add("city", h.City)
	fd.Add("country", h.Country)
	fd.Add("description", h.Description)
	fd.Add("type", h.Type)
	fd.Add("pricePerNight", strconv.FormatFloat(h.PricePerNight, 'f', -1, 64))
	fd.Add("starRating", strconv.Itoa(h.StarRating))
	fd.Add("adultCount", strconv.Itoa(h.AdultCount))
	fd.Add("childCount", strconv.Itoa(h.ChildCount))
	for i, f := range h.Facilities {
		fd.Add(fmt.Sprintf("facilities[%d]", i), f)
	}
	for i, u := range h.ImageURLs {
		fd.Add(fmt.Sprintf("imageUrls[%d]", i), u)
	}
	for _, img := range h.ImageFiles {
		fd.AddFile("imageFiles", img)
	}
	return fd
}
