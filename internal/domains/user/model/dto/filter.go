package dto

import (
	"net/url"
	"strings"

	"sportsassist/internal/domains/user/model"
	"sportsassist/shared"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
)

// ListFilter builds the user list filter from the query string: exact
// email, role, organization and active matches, plus a search over name and
// email.
func ListFilter(query url.Values) gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filter.AddEq(model.TableName, model.FieldEmail, strings.ToLower(strings.TrimSpace(query.Get(model.FieldEmail))))
	filter.AddEq(model.TableName, model.FieldRole, query.Get(model.FieldRole))
	filter.AddEq(model.TableName, model.FieldOrganizationID, query.Get(model.FieldOrganizationID))

	if active := shared.ConvertStringToBool(query.Get(model.FieldActive)); active != nil {
		filter.Add(gDto.Filter{
			ArgName:  "active_filter",
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	if search := strings.TrimSpace(query.Get(constant.RequestParamSearch)); search != constant.Empty {
		either := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorOr}
		either.AddSearch(model.TableName, model.FieldFullName, "search_name", search)
		either.AddSearch(model.TableName, model.FieldEmail, "search_email", search)
		filter.Add(either)
	}

	return filter
}
