package repositories

// Collection описывает коллекцию документов: имя таблицы и поля,
// доступные в filter[...] / sort[...] (json-поле → SQL-выражение).
type Collection struct {
	Name    string
	Filters map[string]string
}

func (c Collection) allowed() map[string]string {
	m := map[string]string{
		"id":         "id",
		"name":       "name",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	for k, v := range c.Filters {
		m[k] = v
	}
	return m
}

var (
	Companies = Collection{Name: "companies"}
	Customers = Collection{Name: "customers"}
	Projects  = Collection{Name: "projects", Filters: map[string]string{
		"customer_id": "data->>'customer_id'",
	}}
	Products     = Collection{Name: "products"}
	BatchNumbers = Collection{Name: "batch_numbers", Filters: map[string]string{
		"product_id": "data->>'product_id'",
	}}
	Certificates = Collection{Name: "certificates", Filters: map[string]string{
		"company_id":  "data->>'company_id'",
		"customer_id": "data->>'customer_id'",
		"project_id":  "data->>'project_id'",
		"product_id":  "data->>'product_id'",
		"status":      "data->>'status'",
	}}
	WorkDeliveries = Collection{Name: "work_deliveries", Filters: map[string]string{
		"work_type":     "data->>'work_type'",
		"building_type": "data->>'building_type'",
		"status":        "data->>'status'",
		"company_id":    "data->>'company_id'",
		"customer_id":   "data->>'customer_id'",
		"project_id":    "data->>'project_id'",
	}}
	PhaseTemplates = Collection{Name: "phase_templates", Filters: map[string]string{
		"work_type":     "data->>'work_type'",
		"building_type": "data->>'building_type'",
		"is_default":    "data->>'is_default'",
	}}
)

// AllCollections упорядочены для очистки. Сначала документы, потом справочники.
var AllCollections = []Collection{
	Certificates, WorkDeliveries, PhaseTemplates, BatchNumbers, Projects, Products, Customers, Companies,
}

func CollectionByName(name string) (Collection, bool) {
	for _, c := range AllCollections {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}
