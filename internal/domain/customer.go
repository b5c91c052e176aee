package domain

// ============================================================
// Customers
// ============================================================

// Customer is a legal or natural person the token can act for.
type Customer struct {
	CustomerCode string       `json:"customerCode"`
	CustomerType CustomerType `json:"customerType"`
	IsResident   bool         `json:"isResident"`
	TaxCode      *string      `json:"taxCode,omitempty" validate:"omitempty,tax_code"`
	FullName     string       `json:"fullName"`
	ShortName    *string      `json:"shortName,omitempty"`
	KPP          *string      `json:"kpp,omitempty"`
	CustomerOGRN *string      `json:"customerOgrn,omitempty"`
}

// CustomerPageData is the Data payload of the customers list.
type CustomerPageData struct {
	Customer []Customer `json:"Customer"`
}

// Contractor is a statement counterparty.
type Contractor struct {
	INN  *string `json:"inn,omitempty"`
	KPP  *string `json:"kpp,omitempty"`
	Name *string `json:"name,omitempty"`
}

// ContractorBank is the bank serving a statement counterparty.
type ContractorBank struct {
	AccountIdentification *string                           `json:"accountIdentification,omitempty"`
	Identification        *string                           `json:"identification,omitempty"`
	Name                  *string                           `json:"name,omitempty"`
	SchemeName            FinancialInstitutionIdentification `json:"schemeName"`
}

// FinancialInstitutionIdentification is the scheme of a bank identifier.
type FinancialInstitutionIdentification string

const (
	InstitutionBICFI FinancialInstitutionIdentification = "RU.CBR.BICFI"
	InstitutionBIK   FinancialInstitutionIdentification = "RU.CBR.BIK"
)

var institutionIdentifications = []FinancialInstitutionIdentification{InstitutionBICFI, InstitutionBIK}

func (f *FinancialInstitutionIdentification) UnmarshalText(b []byte) error {
	v, err := parseEnum("FinancialInstitutionIdentification", string(b), institutionIdentifications)
	*f = v
	return err
}

// Supplier is the seller of a receipt item when it differs from the merchant.
type Supplier struct {
	Phone   string `json:"phone" validate:"phone"`
	Name    string `json:"name" validate:"min=1"`
	TaxCode string `json:"taxCode" validate:"tax_code"`
}
