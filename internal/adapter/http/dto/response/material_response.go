package response

import "quote3d/internal/domain/entities"

type MaterialResponse struct {
	Name         string   `json:"name"`
	Code         string   `json:"code"`
	Price        float64  `json:"price"`
	LeadTimeDays int      `json:"leadTimeDays"`
	Properties   []string `json:"properties"`
}

func FromMaterial(m entities.Material) MaterialResponse {
	props := m.Properties
	if props == nil {
		props = []string{}
	}
	return MaterialResponse{
		Name:         m.Name,
		Code:         m.Code,
		Price:        m.Price.Round(4).InexactFloat64(),
		LeadTimeDays: m.LeadTimeDays,
		Properties:   props,
	}
}

func FromMaterials(ms []entities.Material) []MaterialResponse {
	out := make([]MaterialResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromMaterial(m))
	}
	return out
}
