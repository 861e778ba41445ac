package options

const (
	KeyAmountOfKeys            = "amount_of_keys"
	KeyAmountOfTreasureInVault = "amount_of_treasure_in_vault"
)

// AmountOfKeys is the number of Vault Keys needed to open The Vault.
var AmountOfKeys = Range{
	Key:         KeyAmountOfKeys,
	DisplayName: "Amount of Keys you need to open The Vault",
	Description: "Select the amount of Keys you need to open The Vault",
	Min:         1,
	Max:         100,
	Default:     10,
}

// AmountOfTreasureInVault is the number of Treasure locations in The Vault.
var AmountOfTreasureInVault = Range{
	Key:         KeyAmountOfTreasureInVault,
	DisplayName: "Amount of Treasure items that are in The Vault",
	Description: "Select the amount of Treasure items that are in The Vault",
	Min:         1,
	Max:         100,
	Default:     10,
}
