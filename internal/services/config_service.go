package services

import (
	"context"
	"strings"

	"github.com/duozero/intake-service/internal/dtos"
	"github.com/duozero/intake-service/internal/repositories"
	"github.com/duozero/intake-service/internal/utils"
)

// ConfigService assembles the wizard's option lists from the Config sheet.
type ConfigService struct {
	configRepo *repositories.ConfigRepository
}

func NewConfigService(configRepo *repositories.ConfigRepository) *ConfigService {
	return &ConfigService{configRepo: configRepo}
}

func (s *ConfigService) Options(ctx context.Context) (*dtos.ConfigResponse, error) {
	table, err := s.configRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	list := func(names ...string) []string {
		return utils.Uniq(trimNonEmpty(table.Column(names...)))
	}

	resp := &dtos.ConfigResponse{
		Ok:          true,
		Categories:  list("Category", "Categories"),
		Departments: list("Department", "Departments"),
		Priorities:  list("Priority", "Priorities"),
		Statuses:    list("Status", "Statuses"),
		Provinces:   list("Province", "Provinces"),

		PropertyTypes:     list("Property Type", "PropertyType"),
		ExtrasCols:        list("Extras", "Extra Services"),
		DurationHours:     list("Duration Hours", "DurationHours"),
		NumberOfCleanings: list("Number of Cleanings", "NumberOfCleanings"),
		RenewPlans:        list("Renew Plan", "Auto Renew", "RenewPlans"),

		CitiesByProvince: s.citiesByProvince(table),

		ServiceTypes: list(
			"Type of service to be performed",
			"Service Type",
			"ServiceType",
		),
	}
	return resp, nil
}

/*
citiesByProvince pairs each row's province with its City/Town cell. A city
cell may itself hold a comma-separated list (operations batch them per
province), so it is split before grouping. Lists keep first-seen order.
*/
func (s *ConfigService) citiesByProvince(table *repositories.ConfigTable) map[string][]string {
	out := map[string][]string{}
	for i := 0; i < table.Rows(); i++ {
		province := strings.TrimSpace(table.Cell(i, "Province", "Provinces"))
		if province == "" {
			continue
		}
		cities := utils.SplitCSV(table.Cell(i, "City/Town", "CityTown", "City"))
		if len(cities) == 0 {
			continue
		}
		out[province] = utils.Uniq(append(out[province], cities...))
	}
	return out
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
