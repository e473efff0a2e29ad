package routine

// Token scopes a group of scheduled work. Revoking a token revokes every
// child made from it. A nil Token is never revoked.
type Token struct {
	name    string
	parent  *Token
	revoked bool
}

func NewToken(name string) *Token {
	return &Token{name: name}
}

// Child returns a token that is revoked whenever t is.
func (t *Token) Child(name string) *Token {
	return &Token{name: name, parent: t}
}

func (t *Token) Revoke() {
	if t == nil {
		return
	}
	t.revoked = true
}

func (t *Token) Revoked() bool {
	for cur := t; cur != nil; cur = cur.parent {
		if cur.revoked {
			return true
		}
	}
	return false
}

func (t *Token) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}
