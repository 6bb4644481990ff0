package settings

import (
	"pointify-pos/internal/database"
)

// Profile is the typed view of the settings collection. Every
// default-fallback lives here, in one place, instead of being
// scattered across call sites.
type Profile struct {
	StoreName      string `json:"storeName"`
	StoreAddress   string `json:"storeAddress"`
	StorePhone     string `json:"storePhone"`
	CurrencySymbol string `json:"currencySymbol"`
	CurrencyCode   string `json:"currencyCode"`
	StoreCountry   string `json:"storeCountry"`
	StoreLogo      string `json:"storeLogo,omitempty"` // base64, print header

	// Per-country electronic-payment account identifiers. A method is
	// offered at the till only when its account field is configured.
	MpesaPaybill     string `json:"mpesaPaybill,omitempty"`
	MpesaAccount     string `json:"mpesaAccount,omitempty"`
	MpesaBuyGoods    string `json:"mpesaBuyGoods,omitempty"`
	MpesaAgent       string `json:"mpesaAgent,omitempty"`
	MpesaStoreNumber string `json:"mpesaStoreNumber,omitempty"`
	SomaliaEVC       string `json:"somaliaEVC,omitempty"`
	SomaliaJeeb      string `json:"somaliaJeeb,omitempty"`
	SomaliaEdahab    string `json:"somaliaEdahab,omitempty"`
	SomaliaSalaam    string `json:"somaliaSalaam,omitempty"`
	SomaliaMerchant  string `json:"somaliaMerchant,omitempty"`
	UgandaAirtel     string `json:"ugandaAirtel,omitempty"`
	UgandaMTN        string `json:"ugandaMTN,omitempty"`
	UgandaOther      string `json:"ugandaOther,omitempty"`
}

// Load reads the settings collection and resolves defaults for absent
// keys.
func Load(store *database.Store) (*Profile, error) {
	rows, err := store.GetAllSettings()
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}

	get := func(key, fallback string) string {
		if v, ok := values[key]; ok && v != "" {
			return v
		}
		return fallback
	}

	return &Profile{
		StoreName:        get("storeName", "My Store"),
		StoreAddress:     get("storeAddress", ""),
		StorePhone:       get("storePhone", ""),
		CurrencySymbol:   get("currencySymbol", "$"),
		CurrencyCode:     get("currencyCode", "USD"),
		StoreCountry:     get("storeCountry", "Kenya"),
		StoreLogo:        get("storeLogo", ""),
		MpesaPaybill:     get("mpesaPaybill", ""),
		MpesaAccount:     get("mpesaAccount", ""),
		MpesaBuyGoods:    get("mpesaBuyGoods", ""),
		MpesaAgent:       get("mpesaAgent", ""),
		MpesaStoreNumber: get("mpesaStoreNumber", ""),
		SomaliaEVC:       get("somaliaEVC", ""),
		SomaliaJeeb:      get("somaliaJeeb", ""),
		SomaliaEdahab:    get("somaliaEdahab", ""),
		SomaliaSalaam:    get("somaliaSalaam", ""),
		SomaliaMerchant:  get("somaliaMerchant", ""),
		UgandaAirtel:     get("ugandaAirtel", ""),
		UgandaMTN:        get("ugandaMTN", ""),
		UgandaOther:      get("ugandaOther", ""),
	}, nil
}

// PaymentMethods derives the configured set of payment-method tags
// for the store's country. CASH is always offered.
func (p *Profile) PaymentMethods() []string {
	methods := []string{"CASH"}

	switch p.StoreCountry {
	case "Kenya":
		if p.MpesaPaybill != "" || p.MpesaBuyGoods != "" || p.MpesaAgent != "" {
			methods = append(methods, "MPESA")
		}
	case "Somalia":
		if p.SomaliaEVC != "" {
			methods = append(methods, "EVC Plus")
		}
		if p.SomaliaJeeb != "" {
			methods = append(methods, "Jeeb")
		}
		if p.SomaliaEdahab != "" {
			methods = append(methods, "e-Dahab")
		}
		if p.SomaliaSalaam != "" {
			methods = append(methods, "Salaam")
		}
		if p.SomaliaMerchant != "" {
			methods = append(methods, "Merchant")
		}
	case "Uganda":
		if p.UgandaAirtel != "" {
			methods = append(methods, "Airtel Money")
		}
		if p.UgandaMTN != "" {
			methods = append(methods, "MTN MoMo")
		}
		if p.UgandaOther != "" {
			methods = append(methods, "Other")
		}
	default:
		methods = append(methods, "Card", "Other")
	}

	return methods
}
