// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package gateway

import (
	"blogdesk/internal/api"
	"blogdesk/internal/codec"
	"blogdesk/internal/models"
)

// PostService is the gateway for /api/posts.
type PostService = Service[models.Post, codec.WirePost]

// NewPostService returns the post gateway. Temporal fields are converted by
// codec.EncodePost and codec.DecodePost.
func NewPostService(client *api.Client) *PostService {
	return newService(client, "post", "posts", Codec[models.Post, codec.WirePost]{
		Encode:   codec.EncodePost,
		Decode:   codec.DecodePost,
		Identity: models.PostIdentifier,
	})
}

// CategoryService is the gateway for /api/categories.
type CategoryService = Service[models.Category, models.Category]

// NewCategoryService returns the category gateway.
func NewCategoryService(client *api.Client) *CategoryService {
	return newService(client, "category", "categories", Codec[models.Category, models.Category]{
		Encode:   codec.EncodeCategory,
		Decode:   codec.DecodeCategory,
		Identity: models.CategoryIdentifier,
	})
}
