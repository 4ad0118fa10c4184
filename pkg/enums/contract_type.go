package enums

import "fmt"

type ContractType string

const (
	ContractTypeIndefinite ContractType = "INDEFINITE"
	ContractTypeFixedTerm  ContractType = "FIXED_TERM"
	ContractTypePartTime   ContractType = "PART_TIME"
	ContractTypeTraining   ContractType = "TRAINING"
	ContractTypeContractor ContractType = "CONTRACTOR"
)

func (c ContractType) String() string {
	return string(c)
}

func (c ContractType) IsValid() bool {
	switch c {
	case ContractTypeIndefinite, ContractTypeFixedTerm, ContractTypePartTime,
		ContractTypeTraining, ContractTypeContractor:
		return true
	}
	return false
}

func ParseContractType(value string) (ContractType, error) {
	c := ContractType(value)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid contract type: %q", value)
	}
	return c, nil
}
