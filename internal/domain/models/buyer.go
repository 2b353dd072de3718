package models

// UnknownBuyerName is displayed for buyers with no matching registry entry.
const UnknownBuyerName = "Unknown Buyer"

// Buyer is the result of resolving a transaction's buyer phone against the user
// registry. It is either a ResolvedBuyer or an UnknownBuyer.
type Buyer interface {
	Mobile() string
	DisplayName() string
	UserID() string
	Known() bool
}

// ResolvedBuyer is a buyer backed by a registered user.
type ResolvedBuyer struct {
	User User
}

func (b ResolvedBuyer) Mobile() string      { return b.User.Mobile }
func (b ResolvedBuyer) DisplayName() string { return b.User.Name }
func (b ResolvedBuyer) UserID() string      { return b.User.ID }
func (b ResolvedBuyer) Known() bool         { return true }

// UnknownBuyer is a phone number with no registry entry.
type UnknownBuyer struct {
	Phone string
}

func (b UnknownBuyer) Mobile() string      { return b.Phone }
func (b UnknownBuyer) DisplayName() string { return UnknownBuyerName }
func (b UnknownBuyer) UserID() string      { return "" }
func (b UnknownBuyer) Known() bool         { return false }

// BuyerDirectory maps normalized mobile numbers to registered users.
type BuyerDirectory map[string]User

// NewBuyerDirectory indexes users by normalized mobile. Later entries win on duplicates.
func NewBuyerDirectory(users []User) BuyerDirectory {
	dir := make(BuyerDirectory, len(users))
	for _, u := range users {
		dir[NormalizeMobile(u.Mobile)] = u
	}
	return dir
}

// Resolve returns the registered buyer for mobile, or an UnknownBuyer. A user
// with an empty name still counts as unknown for display purposes.
func (d BuyerDirectory) Resolve(mobile string) Buyer {
	mobile = NormalizeMobile(mobile)
	if u, ok := d[mobile]; ok && u.Name != "" {
		u.Mobile = mobile
		return ResolvedBuyer{User: u}
	}
	return UnknownBuyer{Phone: mobile}
}
