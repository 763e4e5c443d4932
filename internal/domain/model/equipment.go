package model

// EquipmentType references an entry of the equipment catalog.
type EquipmentType string

const (
	EquipmentNotebook   EquipmentType = "notebook"
	EquipmentDesktop    EquipmentType = "desktop"
	EquipmentMonitor    EquipmentType = "monitor"
	EquipmentPrinter    EquipmentType = "printer"
	EquipmentSmartphone EquipmentType = "smartphone"
	EquipmentTablet     EquipmentType = "tablet"
	EquipmentPeripheral EquipmentType = "peripheral"
	EquipmentTelevision EquipmentType = "television"
	EquipmentNetworking EquipmentType = "networking"
	EquipmentHousehold  EquipmentType = "household_appliance"
	EquipmentOther      EquipmentType = "other"
)

// Equipment is one row of the equipment catalog.
type Equipment struct {
	Code  EquipmentType
	Label string
}

// Sorted by label, the order the catalog is offered to citizens.
var equipmentCatalog = []Equipment{
	{EquipmentDesktop, "Computador de Mesa"},
	{EquipmentHousehold, "Eletrodoméstico"},
	{EquipmentNetworking, "Equipamento de Rede"},
	{EquipmentPrinter, "Impressora"},
	{EquipmentMonitor, "Monitor"},
	{EquipmentNotebook, "Notebook"},
	{EquipmentOther, "Outros"},
	{EquipmentPeripheral, "Periféricos"},
	{EquipmentSmartphone, "Smartphone"},
	{EquipmentTablet, "Tablet"},
	{EquipmentTelevision, "Televisor"},
}

// EquipmentCatalog returns a copy of the equipment catalog.
func EquipmentCatalog() []Equipment {
	out := make([]Equipment, len(equipmentCatalog))
	copy(out, equipmentCatalog)
	return out
}

// Valid reports whether the equipment type is part of the catalog.
func (e EquipmentType) Valid() bool {
	_, ok := e.lookup()
	return ok
}

// Label returns the display name, or the raw code when unknown.
func (e EquipmentType) Label() string {
	if eq, ok := e.lookup(); ok {
		return eq.Label
	}
	return string(e)
}

func (e EquipmentType) lookup() (Equipment, bool) {
	for _, eq := range equipmentCatalog {
		if eq.Code == e {
			return eq, true
		}
	}
	return Equipment{}, false
}
