package handlers

import (
	"time"

	"Catalog/internal/model"
)

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

type categoryResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func toCategoryResponse(c *model.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

type tagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toTagResponse(t *model.Tag) tagResponse {
	return tagResponse{ID: t.ID, Name: t.Name}
}

// itemResponse - owner/category/tags отдаются именами, *_id - идентификаторами.
type itemResponse struct {
	ID          int64     `json:"id"`
	UUID        string    `json:"uuid"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Owner       *string   `json:"owner"`
	Category    *string   `json:"category"`
	Tags        []string  `json:"tags"`
	OwnerID     *int64    `json:"owner_id"`
	CategoryID  *int64    `json:"category_id"`
	TagIDs      []int64   `json:"tag_ids"`
}

func toItemResponse(it *model.Item) itemResponse {
	resp := itemResponse{
		ID:          it.ID,
		UUID:        it.UUID,
		Name:        it.Name,
		Description: it.Description,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
		OwnerID:     it.OwnerID,
		CategoryID:  it.CategoryID,
		Tags:        make([]string, 0, len(it.Tags)),
		TagIDs:      it.TagIDs(),
	}
	if it.Owner != nil {
		resp.Owner = &it.Owner.Username
	}
	if it.Category != nil {
		resp.Category = &it.Category.Name
	}
	for _, t := range it.Tags {
		resp.Tags = append(resp.Tags, t.Name)
	}
	return resp
}

func toItemResponses(items []model.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for i := range items {
		out = append(out, toItemResponse(&items[i]))
	}
	return out
}

type itemListResponse struct {
	Items  []itemResponse `json:"items"`
	Total  int64          `json:"total"`
	Limit  *int           `json:"limit"`
	Offset *int           `json:"offset"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}
