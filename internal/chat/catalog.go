// internal/chat/catalog.go
package chat

import (
	"fmt"
	"strings"
)

// Endpoint describes one of the four data categories the router can
// select. The set is fixed at process start and never mutated.
type Endpoint struct {
	ID          int
	Name        string
	Description string
	Columns     []Column
}

type Column struct {
	Name string
	Type string
}

const (
	EndpointUsers    = 1
	EndpointStores   = 2
	EndpointFeedback = 3
	EndpointCitas    = 4
)

var endpoints = []Endpoint{
	{
		ID:          EndpointUsers,
		Name:        "getUsers",
		Description: "Get application users (field staff and admins)",
		Columns: []Column{
			{"id", "number"},
			{"username", "string"},
			{"email", "string"},
			{"first_name", "string"},
			{"last_name", "string"},
			{"role", "string"},
		},
	},
	{
		ID:          EndpointStores,
		Name:        "getStores",
		Description: "Get retail stores with location and NPS score; supports name search, nps_min/nps_max bounds and latitude/longitude/radius (km) proximity search",
		Columns: []Column{
			{"id", "number"},
			{"nombre", "string"},
			{"direccion", "string"},
			{"latitude", "number"},
			{"longitude", "number"},
			{"nps", "number"},
		},
	},
	{
		ID:          EndpointFeedback,
		Name:        "getFeedback",
		Description: "Get customer feedback entries; supports store_id, rating and nps range bounds, date_from/date_to and sort_by/sort_direction",
		Columns: []Column{
			{"id", "number"},
			{"store_id", "number"},
			{"user_id", "number"},
			{"rating", "number"},
			{"nps", "number"},
			{"comment", "string"},
			{"created_at", "date"},
		},
	},
	{
		ID:          EndpointCitas,
		Name:        "getCitas",
		Description: "Get store visit appointments (citas) with their attending users; supports store_id, user_id, date_from/date_to, confirmed and cancelled",
		Columns: []Column{
			{"id", "number"},
			{"store_id", "number"},
			{"date", "date"},
			{"time", "string"},
			{"confirmed", "boolean"},
			{"cancelled", "boolean"},
		},
	},
}

// Endpoints returns the static descriptor set in ascending id order.
func Endpoints() []Endpoint {
	return endpoints
}

// Lookup returns the descriptor for id, or false for unknown ids.
func Lookup(id int) (Endpoint, bool) {
	for _, e := range endpoints {
		if e.ID == id {
			return e, true
		}
	}
	return Endpoint{}, false
}

// DescribeEndpoints renders the catalog as the natural-language list
// embedded in the routing prompt. Output is deterministic: descriptors
// in ascending id order, columns in declaration order.
func DescribeEndpoints() string {
	var sb strings.Builder
	for i, e := range endpoints {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "%d. %s: %s\n", e.ID, e.Name, e.Description)
		if len(e.Columns) == 0 {
			sb.WriteString("   No parameters required")
			continue
		}
		sb.WriteString("   Columns/parameters:")
		for _, col := range e.Columns {
			fmt.Fprintf(&sb, "\n   - %s (%s)", col.Name, col.Type)
		}
	}
	return sb.String()
}
