// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package codec

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"

	"blogdesk/internal/models"
)

func fullPost() *models.Post {
	return &models.Post{
		ID:            models.Ptr[int64](1),
		Title:         "Hello",
		Slug:          models.Ptr("hello"),
		Summary:       models.Ptr("Intro"),
		Body:          models.Ptr("# Hi"),
		CreatedAt:     models.NewMoment(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)),
		CreatedBy:     models.Ptr("admin"),
		PublishedDate: models.NewMoment(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)),
		State:         models.Ptr(1),
		Tags:          models.Ptr("go,blog"),
		UpdatedAt:     models.NewMoment(time.Date(2024, 3, 6, 8, 30, 15, 250_000_000, time.UTC)),
		UpdatedBy:     models.Ptr("editor"),
		Category: &models.Category{
			ID:               models.Ptr[int64](1),
			Name:             models.Ptr("Tech"),
			Slug:             models.Ptr("tech"),
			ImageContentType: models.Ptr("image/png"),
			Image:            []byte("png"),
		},
	}
}

func marshalGolden(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return append(b, '\n')
}

// TestEncodePost_Golden pins the exact outbound JSON for a fully populated post.
func TestEncodePost_Golden(t *testing.T) {
	g := goldie.New(t)
	g.Assert(t, "post_full", marshalGolden(t, EncodePost(fullPost())))
}

// TestEncodePost_DropsInvalidMoments verifies that invalid or missing
// temporal values never reach the wire.
func TestEncodePost_DropsInvalidMoments(t *testing.T) {
	bad := models.ParseMoment("31/02/2024")
	p := &models.Post{
		Title:     "Draft",
		CreatedAt: &bad,
		UpdatedAt: &bad,
	}

	w := EncodePost(p)
	if w.CreatedAt != nil || w.UpdatedAt != nil || w.PublishedDate != nil {
		t.Fatalf("invalid moments leaked: %+v", w)
	}

	g := goldie.New(t)
	g.Assert(t, "post_draft_invalid_dates", marshalGolden(t, w))
}

func TestEncodePost_DateOnly(t *testing.T) {
	p := &models.Post{PublishedDate: models.NewMoment(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC))}
	w := EncodePost(p)
	if w.PublishedDate == nil || *w.PublishedDate != "2024-03-05" {
		t.Fatalf("PublishedDate = %v, want 2024-03-05", w.PublishedDate)
	}
}

func TestEncodePost_InstantIsUTC(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	p := &models.Post{CreatedAt: models.NewMoment(time.Date(2024, 3, 5, 11, 0, 0, 0, cet))}
	w := EncodePost(p)
	if w.CreatedAt == nil || *w.CreatedAt != "2024-03-05T10:00:00.000Z" {
		t.Fatalf("CreatedAt = %v, want 2024-03-05T10:00:00.000Z", w.CreatedAt)
	}
}

// TestEncodePost_DoesNotMutateInput checks that the payload is a new value and
// that editing it (or its category) leaves the original post untouched.
func TestEncodePost_DoesNotMutateInput(t *testing.T) {
	p := fullPost()
	before := fullPost()

	w := EncodePost(p)
	*w.Title = "changed"
	*w.Category.Name = "changed"
	w.CreatedAt = nil

	if diff := cmp.Diff(before, p); diff != "" {
		t.Errorf("EncodePost mutated its input (-want +got):\n%s", diff)
	}
}

func TestEncodePost_EmptyTitleOmitted(t *testing.T) {
	b, err := json.Marshal(EncodePost(&models.Post{ID: models.Ptr[int64](1), Slug: models.Ptr("s")}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"id":1,"slug":"s"}`; got != want {
		t.Errorf("payload = %s, want %s", got, want)
	}
}

func TestEncodePost_Nil(t *testing.T) {
	if EncodePost(nil) != nil {
		t.Error("EncodePost(nil) should be nil")
	}
	if DecodePost(nil) != nil {
		t.Error("DecodePost(nil) should be nil")
	}
}

func TestDecodePost(t *testing.T) {
	raw := `{"id":5,"title":"T","createdAt":"2024-03-05T10:00:00Z","publishedDate":"2024-03-05","updatedAt":null}`
	var w WirePost
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	p := DecodePost(&w)
	if p.CreatedAt == nil || !p.CreatedAt.IsValid() {
		t.Fatalf("CreatedAt = %v, want valid moment", p.CreatedAt)
	}
	if !p.CreatedAt.Time().Equal(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", p.CreatedAt.Time())
	}
	if p.PublishedDate == nil || p.PublishedDate.Time().Format(DateFormat) != "2024-03-05" {
		t.Errorf("PublishedDate = %v", p.PublishedDate)
	}
	if p.UpdatedAt != nil {
		t.Errorf("UpdatedAt = %v, want nil for null", p.UpdatedAt)
	}
}

func TestDecodePost_NullCreatedAt(t *testing.T) {
	var w WirePost
	if err := json.Unmarshal([]byte(`{"createdAt":null}`), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p := DecodePost(&w); p.CreatedAt != nil {
		t.Errorf("CreatedAt = %v, want nil", p.CreatedAt)
	}
}

// TestDecodePost_MalformedIsInvalid verifies that a malformed string does not
// fail decoding but yields a Moment that the encoder will then drop.
func TestDecodePost_MalformedIsInvalid(t *testing.T) {
	w := &WirePost{CreatedAt: models.Ptr("yesterday")}
	p := DecodePost(w)
	if p.CreatedAt == nil || p.CreatedAt.IsValid() {
		t.Fatalf("CreatedAt = %v, want invalid moment", p.CreatedAt)
	}
	if out := EncodePost(p); out.CreatedAt != nil {
		t.Errorf("re-encoded CreatedAt = %q, want omitted", *out.CreatedAt)
	}
}

func TestDecodePosts_PreservesOrder(t *testing.T) {
	ws := []WirePost{
		{ID: models.Ptr[int64](3), CreatedAt: models.Ptr("2024-01-01T00:00:00Z")},
		{ID: models.Ptr[int64](1)},
		{ID: models.Ptr[int64](2), PublishedDate: models.Ptr("2024-02-02")},
	}

	posts := DecodePosts(ws)
	if len(posts) != 3 {
		t.Fatalf("len = %d, want 3", len(posts))
	}
	for i, want := range []int64{3, 1, 2} {
		if *posts[i].ID != want {
			t.Errorf("posts[%d].ID = %d, want %d", i, *posts[i].ID, want)
		}
	}
	if posts[0].CreatedAt == nil || posts[1].CreatedAt != nil || posts[2].CreatedAt != nil {
		t.Error("createdAt decoded on the wrong elements")
	}
	if posts[2].PublishedDate == nil || posts[0].PublishedDate != nil {
		t.Error("publishedDate decoded on the wrong elements")
	}
	if DecodePosts(nil) != nil {
		t.Error("DecodePosts(nil) should be nil")
	}
}

// TestRoundTrip encodes and decodes posts with valid moments and checks that
// instants survive exactly and the published date keeps its calendar day.
func TestRoundTrip(t *testing.T) {
	zones := []*time.Location{time.UTC, time.FixedZone("EST", -5*3600), time.FixedZone("JST", 9*3600)}
	for _, loc := range zones {
		t.Run(loc.String(), func(t *testing.T) {
			created := time.Date(2023, 12, 31, 23, 59, 59, 999_000_000, loc)
			published := time.Date(2024, 2, 29, 18, 45, 0, 0, loc)
			p := &models.Post{
				Title:         "rt",
				CreatedAt:     models.NewMoment(created),
				UpdatedAt:     models.NewMoment(created.Add(time.Hour)),
				PublishedDate: models.NewMoment(published),
			}

			b, err := json.Marshal(EncodePost(p))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var w WirePost
			if err := json.Unmarshal(b, &w); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			got := DecodePost(&w)

			if !got.CreatedAt.Time().Equal(created) {
				t.Errorf("CreatedAt = %v, want %v", got.CreatedAt.Time(), created)
			}
			if !got.UpdatedAt.Time().Equal(created.Add(time.Hour)) {
				t.Errorf("UpdatedAt = %v", got.UpdatedAt.Time())
			}
			if got.PublishedDate.Time().Format(DateFormat) != published.Format(DateFormat) {
				t.Errorf("PublishedDate = %v, want day %s", got.PublishedDate.Time(), published.Format(DateFormat))
			}
		})
	}
}

func TestRoundTripSubMillisecond(t *testing.T) {
	created := models.NewMoment(time.Date(2024, 3, 5, 10, 0, 0, 123_456_789, time.UTC))

	b, err := json.Marshal(EncodePost(&models.Post{Title: "ns", CreatedAt: created}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var w WirePost
	if err := json.Unmarshal(b, &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w.CreatedAt == nil || *w.CreatedAt != "2024-03-05T10:00:00.123Z" {
		t.Fatalf("wire createdAt = %v", w.CreatedAt)
	}
	got := DecodePost(&w)
	if !got.CreatedAt.Equal(*created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt.Time(), created.Time())
	}
}

func TestCategoryCodec(t *testing.T) {
	c := &models.Category{ID: models.Ptr[int64](2), Name: models.Ptr("Life"), Image: []byte{0xff}}
	out := EncodeCategory(c)
	if diff := cmp.Diff(c, out); diff != "" {
		t.Errorf("EncodeCategory changed content (-want +got):\n%s", diff)
	}
	if out == c {
		t.Error("EncodeCategory should return a copy")
	}
	if DecodeCategory(c) != c {
		t.Error("DecodeCategory should pass through")
	}
}
