package domain

// ============================================================
// Receipts
// ============================================================

// ReceiptClient is the buyer a fiscal receipt is sent to.
type ReceiptClient struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email string  `json:"email" validate:"required,email"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,phone"`
}

// ReceiptItem is one line of a fiscal receipt.
type ReceiptItem struct {
	VatType       *VatType       `json:"vatType,omitempty"`
	Name          string         `json:"name" validate:"min=1,max=256"`
	Amount        float64        `json:"amount" validate:"gte=0"`
	Quantity      float64        `json:"quantity" validate:"gt=0"`
	PaymentMethod *PaymentMethod `json:"paymentMethod,omitempty"`
	PaymentObject *PaymentObject `json:"paymentObject,omitempty"`
	Measure       *Measure       `json:"measure,omitempty"`
	Supplier      *Supplier      `json:"Supplier,omitempty"`
}

// Measure is the unit of quantity of a receipt item.
type Measure string

const (
	MeasureGram             Measure = "г."
	MeasureKilogram         Measure = "кг."
	MeasureTon              Measure = "т."
	MeasureCentimeter       Measure = "см."
	MeasureDecimeter        Measure = "дм."
	MeasureMeter            Measure = "м."
	MeasureSquareCentimeter Measure = "см2."
	MeasureSquareDecimeter  Measure = "дм2."
	MeasureSquareMeter      Measure = "м2."
	MeasureMilliliter       Measure = "мл."
	MeasureLiter            Measure = "л."
	MeasureCubicMeter       Measure = "м3"
	MeasureKilowattHour     Measure = "кВт.ч."
	MeasureGigacalorie      Measure = "Гкал."
	MeasureDay              Measure = "дн."
	MeasureHour             Measure = "ч."
	MeasureMinute           Measure = "мин."
	MeasureSecond           Measure = "сек."
	MeasureKilobyte         Measure = "Кб."
	MeasureMegabyte         Measure = "Мб."
	MeasureGigabyte         Measure = "Гб."
	MeasureTerabyte         Measure = "Тб."
	MeasurePiece            Measure = "шт."
)

var measures = []Measure{
	MeasureGram, MeasureKilogram, MeasureTon, MeasureCentimeter, MeasureDecimeter,
	MeasureMeter, MeasureSquareCentimeter, MeasureSquareDecimeter, MeasureSquareMeter,
	MeasureMilliliter, MeasureLiter, MeasureCubicMeter, MeasureKilowattHour,
	MeasureGigacalorie, MeasureDay, MeasureHour, MeasureMinute, MeasureSecond,
	MeasureKilobyte, MeasureMegabyte, MeasureGigabyte, MeasureTerabyte, MeasurePiece,
}

func (m *Measure) UnmarshalText(b []byte) error {
	v, err := parseEnum("Measure", string(b), measures)
	*m = v
	return err
}

// UnitCode is the legacy unit-of-measure code used by invoices.
type UnitCode string

const (
	UnitPieces         UnitCode = "шт."
	UnitThousandPieces UnitCode = "тыс.шт."
	UnitSet            UnitCode = "компл."
	UnitPair           UnitCode = "пар."
	UnitServiceUnit    UnitCode = "усл.ед."
	UnitPackage        UnitCode = "упак."
	UnitService        UnitCode = "услуга."
	UnitPack           UnitCode = "пач."
	UnitMinute         UnitCode = "мин."
	UnitHour           UnitCode = "ч."
	UnitDay            UnitCode = "сут."
	UnitGram           UnitCode = "г."
	UnitKilogram       UnitCode = "кг."
	UnitLiter          UnitCode = "л."
	UnitMeter          UnitCode = "м."
	UnitSquareMeter    UnitCode = "м2."
	UnitCubicMeter     UnitCode = "м3."
	UnitKilometer      UnitCode = "км."
	UnitHectare        UnitCode = "га."
	UnitKilowatt       UnitCode = "кВт."
	UnitKilowattHour   UnitCode = "кВт.ч."
)

var unitCodes = []UnitCode{
	UnitPieces, UnitThousandPieces, UnitSet, UnitPair, UnitServiceUnit, UnitPackage,
	UnitService, UnitPack, UnitMinute, UnitHour, UnitDay, UnitGram, UnitKilogram,
	UnitLiter, UnitMeter, UnitSquareMeter, UnitCubicMeter, UnitKilometer, UnitHectare,
	UnitKilowatt, UnitKilowattHour,
}

func (u *UnitCode) UnmarshalText(b []byte) error {
	v, err := parseEnum("UnitCode", string(b), unitCodes)
	*u = v
	return err
}
