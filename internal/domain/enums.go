package domain

type ContractType string

const (
	ContractOriginal    ContractType = "Contract"
	ContractChangeOrder ContractType = "CO"
)

type FPAType string

const (
	FPAServices  FPAType = "Services"
	FPAMaterials FPAType = "Materials"
	FPAEquipment FPAType = "Equipment"
)

type FPASubtype string

const (
	FPALabor      FPASubtype = "Labor"
	FPAManagement FPASubtype = "Management"
	FPAOther      FPASubtype = "Other"
)

// Allowed values per enumerated field, in display order. The empty string is
// always accepted as "unset" and is not listed here.
var (
	ContractTypes = []string{string(ContractOriginal), string(ContractChangeOrder)}
	FPATypes      = []string{string(FPAServices), string(FPAMaterials), string(FPAEquipment)}
	FPASubtypes   = []string{string(FPALabor), string(FPAManagement), string(FPAOther)}
)

// ParseContractType validates s against the Contract/CO set.
func ParseContractType(s string) (ContractType, error) {
	if err := checkEnum(FieldContractVsCO, s, ContractTypes); err != nil {
		return "", err
	}
	return ContractType(s), nil
}

// ParseFPAType validates s against the FPA type set.
func ParseFPAType(s string) (FPAType, error) {
	if err := checkEnum(FieldFPAType, s, FPATypes); err != nil {
		return "", err
	}
	return FPAType(s), nil
}

// ParseFPASubtype validates s against the FPA subtype set.
func ParseFPASubtype(s string) (FPASubtype, error) {
	if err := checkEnum(FieldFPASubtype, s, FPASubtypes); err != nil {
		return "", err
	}
	return FPASubtype(s), nil
}

func checkEnum(field Field, s string, allowed []string) error {
	if s == "" {
		return nil
	}
	for _, a := range allowed {
		if s == a {
			return nil
		}
	}
	return &EnumError{Field: field, Value: s, Allowed: allowed}
}
