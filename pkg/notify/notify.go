// Package notify tells the fleet admin about driver/car assignment changes.
package notify

import (
	"fmt"

	"taxiservice/pkg/models"
)

type Notifier interface {
	AssignmentChanged(driver *models.Driver, car *models.Car, assigned bool) error
}

type nop struct{}

func NewNop() Notifier { return nop{} }

func (nop) AssignmentChanged(*models.Driver, *models.Car, bool) error { return nil }

func assignmentMessage(driver *models.Driver, car *models.Car, assigned bool) string {
	maker := ""
	if car.Manufacturer != nil {
		maker = car.Manufacturer.Name + " "
	}
	if assigned {
		return fmt.Sprintf("🚖 %s took car #%d (%s%s)", driver.Username, car.ID, maker, car.Model)
	}
	return fmt.Sprintf("🅿️ %s left car #%d (%s%s)", driver.Username, car.ID, maker, car.Model)
}
