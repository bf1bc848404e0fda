// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"blogdesk/internal/api"
	"blogdesk/internal/apitest"
	"blogdesk/internal/codec"
	"blogdesk/internal/models"
	"blogdesk/internal/task"
)

func newPostService(t *testing.T, opts ...apitest.Option) (*PostService, *apitest.Server) {
	t.Helper()
	srv := apitest.New(opts...)
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return NewPostService(client), srv
}

func TestResourceURLs(t *testing.T) {
	svc, srv := newPostService(t)
	if got, want := svc.ResourceURL(), srv.URL+"/api/posts"; got != want {
		t.Errorf("ResourceURL() = %q, want %q", got, want)
	}
	if got, want := svc.SearchURL(), srv.URL+"/api/_search/posts"; got != want {
		t.Errorf("SearchURL() = %q, want %q", got, want)
	}
}

func TestCreatePost_EncodesDatesAndDecodesResponse(t *testing.T) {
	svc, srv := newPostService(t)
	ctx := context.Background()

	published := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	created := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	invalid := models.ParseMoment("not a date")
	draft := &models.Post{
		Title:         "Hello",
		Body:          models.Ptr("# Hi"),
		PublishedDate: models.NewMoment(published),
		CreatedAt:     models.NewMoment(created),
		UpdatedAt:     &invalid,
	}

	saved, err := svc.Create(ctx, draft)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, ok := saved.Identity(); !ok {
		t.Fatal("created post has no id")
	}
	if draft.ID != nil {
		t.Error("Create modified the draft")
	}

	req, ok := srv.LastRequest()
	if !ok {
		t.Fatal("no request recorded")
	}
	if req.Method != http.MethodPost || req.Path != "/api/posts" {
		t.Errorf("request = %s %s, want POST /api/posts", req.Method, req.Path)
	}
	var sent map[string]any
	if err := json.Unmarshal(req.Body, &sent); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if sent["publishedDate"] != "2024-03-05" {
		t.Errorf("publishedDate = %v, want 2024-03-05", sent["publishedDate"])
	}
	if sent["createdAt"] != "2024-03-01T08:30:00.000Z" {
		t.Errorf("createdAt = %v, want 2024-03-01T08:30:00.000Z", sent["createdAt"])
	}
	if _, present := sent["updatedAt"]; present {
		t.Error("invalid updatedAt should not be sent")
	}

	if saved.CreatedAt == nil || !saved.CreatedAt.Time().Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", saved.CreatedAt, created)
	}
	if saved.UpdatedAt != nil {
		t.Errorf("UpdatedAt = %v, want nil", saved.UpdatedAt)
	}
}

func TestCreatePost_ServerRejection(t *testing.T) {
	svc, _ := newPostService(t)

	_, err := svc.Create(context.Background(), &models.Post{})
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *api.Error", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.ErrorKey != "error.validation" {
		t.Errorf("got %d %q, want 400 error.validation", apiErr.StatusCode, apiErr.ErrorKey)
	}
}

func TestCreateNilFailsFast(t *testing.T) {
	svc, srv := newPostService(t)

	if _, err := svc.Create(context.Background(), nil); !errors.Is(err, api.ErrNilEntity) {
		t.Errorf("Create(nil) err = %v, want ErrNilEntity", err)
	}
	if _, err := svc.Save(context.Background(), nil); !errors.Is(err, api.ErrNilEntity) {
		t.Errorf("Save(nil) err = %v, want ErrNilEntity", err)
	}
	if n := len(srv.Requests()); n != 0 {
		t.Errorf("sent %d requests, want none", n)
	}
}

func TestUpdateWithoutIdentityFailsFast(t *testing.T) {
	svc, srv := newPostService(t)
	ctx := context.Background()
	draft := &models.Post{Title: "draft"}

	if _, err := svc.Update(ctx, draft); !errors.Is(err, api.ErrMissingIdentity) {
		t.Errorf("Update err = %v, want ErrMissingIdentity", err)
	}
	if _, err := svc.PartialUpdate(ctx, draft); !errors.Is(err, api.ErrMissingIdentity) {
		t.Errorf("PartialUpdate err = %v, want ErrMissingIdentity", err)
	}
	if _, err := svc.Update(ctx, nil); !errors.Is(err, api.ErrMissingIdentity) {
		t.Errorf("Update(nil) err = %v, want ErrMissingIdentity", err)
	}
	if n := len(srv.Requests()); n != 0 {
		t.Errorf("%d requests issued, want 0", n)
	}
}

func TestUpdatePost(t *testing.T) {
	svc, srv := newPostService(t)
	stored := srv.SeedPost(codec.WirePost{Title: models.Ptr("Old"), Tags: models.Ptr("go")})

	saved, err := svc.Update(context.Background(), &models.Post{ID: stored.ID, Title: "New"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if saved.Title != "New" {
		t.Errorf("Title = %q, want New", saved.Title)
	}
	if saved.Tags != nil {
		t.Errorf("PUT should replace the entity, Tags = %q", *saved.Tags)
	}

	req, _ := srv.LastRequest()
	if req.Method != http.MethodPut || req.ContentType != "application/json" {
		t.Errorf("request = %s %s, want PUT application/json", req.Method, req.ContentType)
	}
}

func TestPartialUpdateSendsMergePatchOfSetFields(t *testing.T) {
	svc, srv := newPostService(t)
	stored := srv.SeedPost(codec.WirePost{
		Title:   models.Ptr("Title"),
		Summary: models.Ptr("kept"),
		Tags:    models.Ptr("go"),
	})

	saved, err := svc.PartialUpdate(context.Background(), &models.Post{
		ID:    stored.ID,
		Title: "Renamed",
		State: models.Ptr(1),
	})
	if err != nil {
		t.Fatalf("PartialUpdate: %v", err)
	}

	req, _ := srv.LastRequest()
	if req.Method != http.MethodPatch {
		t.Errorf("method = %s, want PATCH", req.Method)
	}
	if req.ContentType != api.ContentTypeMergePatch {
		t.Errorf("content type = %q, want %q", req.ContentType, api.ContentTypeMergePatch)
	}
	var sent map[string]any
	if err := json.Unmarshal(req.Body, &sent); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	wantKeys := map[string]bool{"id": true, "title": true, "state": true}
	for k := range sent {
		if !wantKeys[k] {
			t.Errorf("unexpected field %q in patch", k)
		}
	}

	if saved.Title != "Renamed" || saved.Summary == nil || *saved.Summary != "kept" {
		t.Errorf("merged post = %+v", saved)
	}
}

func TestPartialUpdateOmitsUnsetTitle(t *testing.T) {
	svc, srv := newPostService(t)
	stored := srv.SeedPost(codec.WirePost{Title: models.Ptr("Keep me")})

	saved, err := svc.PartialUpdate(context.Background(), &models.Post{
		ID:   stored.ID,
		Slug: models.Ptr("s"),
	})
	if err != nil {
		t.Fatalf("PartialUpdate: %v", err)
	}

	req, _ := srv.LastRequest()
	var sent map[string]any
	if err := json.Unmarshal(req.Body, &sent); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if _, ok := sent["title"]; ok {
		t.Errorf("patch body carries title: %s", req.Body)
	}
	if saved.Title != "Keep me" {
		t.Errorf("Title = %q, want Keep me", saved.Title)
	}
}

func TestFindAndRemove(t *testing.T) {
	svc, srv := newPostService(t)
	ctx := context.Background()
	stored := srv.SeedPost(codec.WirePost{Title: models.Ptr("Find me"), CreatedAt: models.Ptr("2024-03-05T10:00:00Z")})

	got, err := svc.Find(ctx, *stored.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	want := &models.Post{
		ID:        stored.ID,
		Title:     "Find me",
		CreatedAt: models.NewMoment(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Find mismatch (-want +got):\n%s", diff)
	}

	if err := svc.Remove(ctx, *stored.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := svc.Find(ctx, *stored.ID); !errors.Is(err, api.ErrNotFound) {
		t.Errorf("Find after Remove err = %v, want ErrNotFound", err)
	}
}

func TestListPaginates(t *testing.T) {
	svc, srv := newPostService(t)
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		srv.SeedPost(codec.WirePost{Title: &title})
	}

	page, err := svc.List(context.Background(), api.Paged(1, 2))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var titles []string
	for _, p := range page.Items {
		titles = append(titles, p.Title)
	}
	if diff := cmp.Diff([]string{"c", "d"}, titles); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
	if page.TotalCount != 5 {
		t.Errorf("TotalCount = %d, want 5", page.TotalCount)
	}
	wantLinks := map[string]int{"first": 0, "prev": 0, "next": 2, "last": 2}
	if diff := cmp.Diff(wantLinks, page.Links); diff != "" {
		t.Errorf("links mismatch (-want +got):\n%s", diff)
	}
	if !page.HasNext() {
		t.Error("HasNext() = false, want true")
	}
}

func TestListEmptyDecodesToEmptySlice(t *testing.T) {
	svc, _ := newPostService(t)

	page, err := svc.List(context.Background(), api.RequestOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Items == nil || len(page.Items) != 0 {
		t.Errorf("Items = %#v, want empty non-nil slice", page.Items)
	}
}

func TestSearchAndCount(t *testing.T) {
	svc, srv := newPostService(t)
	ctx := context.Background()
	tech := int64(42)
	srv.SeedPost(codec.WirePost{Title: models.Ptr("Go generics")})
	srv.SeedPost(codec.WirePost{Title: models.Ptr("Gardening"), Category: &models.Category{ID: &tech}})
	srv.SeedPost(codec.WirePost{Title: models.Ptr("Learning Go"), Category: &models.Category{ID: &tech}})

	page, err := svc.Search(ctx, api.RequestOptions{Query: "go"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(page.Items) != 2 {
		t.Errorf("Search returned %d items, want 2", len(page.Items))
	}
	req, _ := srv.LastRequest()
	if req.Path != "/api/_search/posts" || req.RawQuery != "query=go" {
		t.Errorf("search request = %s?%s", req.Path, req.RawQuery)
	}

	n, err := svc.Count(ctx, api.RequestOptions{Filters: api.Criteria{}.IDEquals("categoryId", tech)})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestSaveChoosesCreateOrUpdate(t *testing.T) {
	svc, srv := newPostService(t)
	ctx := context.Background()

	created, err := svc.Save(ctx, &models.Post{Title: "first"})
	if err != nil {
		t.Fatalf("Save draft: %v", err)
	}
	if req, _ := srv.LastRequest(); req.Method != http.MethodPost {
		t.Errorf("draft saved with %s, want POST", req.Method)
	}

	created.Title = "second"
	if _, err := svc.Save(ctx, created); err != nil {
		t.Fatalf("Save persisted: %v", err)
	}
	if req, _ := srv.LastRequest(); req.Method != http.MethodPut {
		t.Errorf("persisted saved with %s, want PUT", req.Method)
	}
}

func TestTokenIsSent(t *testing.T) {
	srv := apitest.New(apitest.WithToken("secret"))
	t.Cleanup(srv.Close)
	ctx := context.Background()

	anon, _ := api.NewClient(srv.URL)
	if _, err := NewPostService(anon).List(ctx, api.RequestOptions{}); !errors.Is(err, api.ErrUnauthorized) {
		t.Errorf("anonymous List err = %v, want ErrUnauthorized", err)
	}

	authed, _ := api.NewClient(srv.URL, api.WithTokenSource(api.StaticToken("secret")))
	if _, err := NewPostService(authed).List(ctx, api.RequestOptions{}); err != nil {
		t.Errorf("authenticated List: %v", err)
	}
}

func TestFindAsync(t *testing.T) {
	svc, srv := newPostService(t)
	stored := srv.SeedPost(codec.WirePost{Title: models.Ptr("async")})

	tk := svc.FindAsync(context.Background(), *stored.ID)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := tk.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got.Title != "async" {
		t.Errorf("Title = %q, want async", got.Title)
	}
}

func TestAbandonedTaskDiscardsResult(t *testing.T) {
	svc, srv := newPostService(t)
	srv.SeedPost(codec.WirePost{Title: models.Ptr("late")})

	tk := svc.ListAsync(context.Background(), api.RequestOptions{})
	tk.Abandon()

	if _, err := tk.Wait(context.Background()); !errors.Is(err, task.ErrAbandoned) {
		t.Errorf("Wait err = %v, want ErrAbandoned", err)
	}
}

func TestSaveAsyncThenSearchAsync(t *testing.T) {
	svc, _ := newPostService(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	saved, err := svc.SaveAsync(ctx, &models.Post{Title: "Queued release notes"}).Wait(ctx)
	if err != nil {
		t.Fatalf("SaveAsync: %v", err)
	}
	if saved.ID == nil {
		t.Fatal("saved post has no id")
	}

	page, err := svc.SearchAsync(ctx, api.RequestOptions{Query: "release"}).Wait(ctx)
	if err != nil {
		t.Fatalf("SearchAsync: %v", err)
	}
	if len(page.Items) != 1 || *page.Items[0].ID != *saved.ID {
		t.Errorf("search items = %+v, want the saved post", page.Items)
	}
}

func TestCategoryService(t *testing.T) {
	srv := apitest.New()
	t.Cleanup(srv.Close)
	client, _ := api.NewClient(srv.URL)
	svc := NewCategoryService(client)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.Category{
		Name:             models.Ptr("Tech"),
		ImageContentType: models.Ptr("image/png"),
		Image:            []byte("png"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == nil {
		t.Fatal("created category has no id")
	}
	if string(created.Image) != "png" {
		t.Errorf("Image = %q, want png", created.Image)
	}

	req, _ := srv.LastRequest()
	var sent map[string]any
	if err := json.Unmarshal(req.Body, &sent); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if sent["image"] != "cG5n" {
		t.Errorf("image = %v, want base64 cG5n", sent["image"])
	}

	page, err := svc.Search(ctx, api.RequestOptions{Query: "tech"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(page.Items) != 1 {
		t.Errorf("Search returned %d items, want 1", len(page.Items))
	}
	if svc.SearchURL() != srv.URL+"/api/_search/categories" {
		t.Errorf("SearchURL() = %q", svc.SearchURL())
	}
}
