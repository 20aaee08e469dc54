package entities

import (
	"fmt"
	"regexp"
	"time"

	"cert-system/pkg/types"
)

type DeliveryStatus string

const (
	DeliveryStatusDraft     DeliveryStatus = "draft"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusAccepted  DeliveryStatus = "accepted"
	DeliveryStatusCompleted DeliveryStatus = "completed"
)

func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusDraft, DeliveryStatusDelivered, DeliveryStatusAccepted, DeliveryStatusCompleted:
		return true
	}
	return false
}

var deliveryNumberPattern = regexp.MustCompile(`^WD-[A-Z]+(?:-[A-Z]+)*-\d{6}-[0-9a-f]{8}$`)

// NewDeliveryNumber: WD-<WORKTYPE>-<id>.
func NewDeliveryNumber(workType WorkType, id string) string {
	return fmt.Sprintf("WD-%s-%s", workType.Code(), id)
}

func IsDeliveryNumber(s string) bool { return deliveryNumberPattern.MatchString(s) }

// WorkDelivery: ход работ по выбранному списку этапов для одной связки
// компания/заказчик/проект. Текущий этап не хранится, а вычисляется по Phases.
type WorkDelivery struct {
	types.Document
	DeliveryNumber string           `json:"delivery_number"`
	WorkType       WorkType         `json:"work_type"`
	BuildingType   BuildingType     `json:"building_type,omitempty"`
	TemplateID     string           `json:"template_id,omitempty"`
	CompanyID      string           `json:"company_id"`
	CustomerID     string           `json:"customer_id"`
	ProjectID      string           `json:"project_id"`
	Company        CompanySnapshot  `json:"company"`
	Customer       CustomerSnapshot `json:"customer"`
	Project        ProjectSnapshot  `json:"project"`
	SnapshotAt     time.Time        `json:"snapshot_at"`
	DeliveryDate   time.Time        `json:"delivery_date"`
	Notes          string           `json:"notes"`
	Phases         PhaseList        `json:"phases"`
	Status         DeliveryStatus   `json:"status"`
}

func (d WorkDelivery) SortKey() string { return d.DeliveryNumber }

func (d WorkDelivery) CurrentPhase() int { return d.Phases.CurrentPhase() }
