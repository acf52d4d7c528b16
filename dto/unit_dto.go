package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/qatrackplus/qatrack-backend/models"
)

type APIUnit struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Site      string    `json:"site,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func AdaptUnitDto(unit models.Unit) APIUnit {
	return APIUnit{
		Id:        unit.Id,
		Name:      unit.Name,
		Site:      unit.Site,
		Active:    unit.Active,
		CreatedAt: unit.CreatedAt,
	}
}

type CreateUnitBody struct {
	Name string `json:"name" binding:"required"`
	Site string `json:"site"`
}

type APIUnitTestCollection struct {
	Id            string    `json:"id"`
	UnitId        string    `json:"unit_id"`
	TestListId    string    `json:"test_list_id"`
	Name          string    `json:"name"`
	FrequencyDays *int      `json:"frequency_days,omitempty"`
	DueDate       null.Time `json:"due_date"`
	CreatedAt     time.Time `json:"created_at"`
}

func AdaptUnitTestCollectionDto(utc models.UnitTestCollection) APIUnitTestCollection {
	return APIUnitTestCollection{
		Id:            utc.Id,
		UnitId:        utc.UnitId,
		TestListId:    utc.TestListId,
		Name:          utc.Name,
		FrequencyDays: utc.FrequencyDays,
		DueDate:       null.TimeFromPtr(utc.DueDate),
		CreatedAt:     utc.CreatedAt,
	}
}

type CreateUnitTestCollectionBody struct {
	UnitId        string `json:"unit_id" binding:"required"`
	TestListId    string `json:"test_list_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	FrequencyDays *int   `json:"frequency_days"`
}

func (b CreateUnitTestCollectionBody) Adapt() models.CreateUnitTestCollectionInput {
	return models.CreateUnitTestCollectionInput{
		UnitId:        b.UnitId,
		TestListId:    b.TestListId,
		Name:          b.Name,
		FrequencyDays: b.FrequencyDays,
	}
}
