package dto

import (
	"time"

	"github.com/qatrackplus/qatrack-backend/models"
)

type APITestListItem struct {
	Order   int                `json:"order"`
	Test    *APITestDefinition `json:"test,omitempty"`
	Sublist *APITestList       `json:"sublist,omitempty"`
}

type APITestList struct {
	Id          string            `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description,omitempty"`
	Items       []APITestListItem `json:"items,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func AdaptTestListDto(tl models.TestListDefinition) APITestList {
	out := APITestList{
		Id:          tl.Id,
		Name:        tl.Name,
		Slug:        tl.Slug,
		Description: tl.Description,
		CreatedAt:   tl.CreatedAt,
		UpdatedAt:   tl.UpdatedAt,
	}
	for _, item := range tl.Items {
		apiItem := APITestListItem{Order: item.Order}
		if item.Test != nil {
			test := AdaptTestDefinitionDto(*item.Test)
			apiItem.Test = &test
		}
		if item.Sublist != nil {
			sublist := AdaptTestListDto(*item.Sublist)
			apiItem.Sublist = &sublist
		}
		out.Items = append(out.Items, apiItem)
	}
	return out
}

type CreateTestListItemBody struct {
	Order     int     `json:"order"`
	TestId    *string `json:"test_id"`
	SublistId *string `json:"sublist_id"`
}

type CreateTestListBody struct {
	Name        string                   `json:"name" binding:"required"`
	Slug        string                   `json:"slug" binding:"required"`
	Description string                   `json:"description"`
	Items       []CreateTestListItemBody `json:"items"`
}

func (b CreateTestListBody) Adapt() models.CreateTestListInput {
	input := models.CreateTestListInput{
		Name:        b.Name,
		Slug:        b.Slug,
		Description: b.Description,
	}
	for _, item := range b.Items {
		input.Items = append(input.Items, models.CreateTestListItemInput{
			Order:     item.Order,
			TestId:    item.TestId,
			SublistId: item.SublistId,
		})
	}
	return input
}
