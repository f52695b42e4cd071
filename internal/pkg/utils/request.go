package utils

import (
	"errors"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/dto/requests"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

func BuildPaginationRequest(r *http.Request) *requests.Pagination {
	query := r.URL.Query()

	page, err := strconv.Atoi(query.Get(constvars.URLQueryParamPage))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(query.Get(constvars.URLQueryParamPageSize))
	if err != nil || pageSize < 1 {
		pageSize = constvars.AppDefaultPageSize
	}
	if pageSize > constvars.AppMaxPageSize {
		pageSize = constvars.AppMaxPageSize
	}

	return &requests.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

func ValidateUrlParamServiceID(param string) error {
	if param == "" {
		return errors.New("parameter is missing from url path")
	}
	if !serviceIDRegex.MatchString(param) {
		return errors.New("parameter is not a valid service id")
	}
	return nil
}

func ValidateUrlParamTransactionID(param string) error {
	if param == "" {
		return errors.New("parameter is missing from url path")
	}
	_, err := uuid.Parse(param)
	return err
}
