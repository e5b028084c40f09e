package domain

// Portfolio is the full set of a user's wallets, keyed by currency code.
// A portfolio exclusively owns its wallets; there is at most one wallet
// per currency code.
type Portfolio struct {
	UserID  int                `json:"user_id"`
	Wallets map[string]*Wallet `json:"wallets"`
}

// NewPortfolio returns an empty portfolio for the given user.
func NewPortfolio(userID int) *Portfolio {
	return &Portfolio{
		UserID:  userID,
		Wallets: make(map[string]*Wallet),
	}
}

// Wallet returns the wallet for the given currency code, or nil when
// the user never funded that currency.
func (p *Portfolio) Wallet(currencyCode string) *Wallet {
	return p.Wallets[NormalizeCode(currencyCode)]
}

// EnsureWallet returns the wallet for the given currency code, lazily
// creating an empty one on first use. Creating is idempotent: an
// existing wallet is returned as is, its balance untouched.
func (p *Portfolio) EnsureWallet(currencyCode string) *Wallet {
	code := NormalizeCode(currencyCode)
	if p.Wallets == nil {
		p.Wallets = make(map[string]*Wallet)
	}
	if w, ok := p.Wallets[code]; ok {
		return w
	}
	w := NewWallet(code)
	p.Wallets[code] = w
	return w
}
