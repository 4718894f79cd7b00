package user

import "encoding/json"

// User is the account returned by the backend on login. Only Email is read by
// the client; every other field is kept as-is in Extra.
type User struct {
	Email string                     `json:"email"`
	Extra map[string]json.RawMessage `json:"-"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*u = User{}
	if raw, ok := fields["email"]; ok {
		if err := json.Unmarshal(raw, &u.Email); err != nil {
			return err
		}
		delete(fields, "email")
	}
	if len(fields) > 0 {
		u.Extra = fields
	}
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(u.Extra)+1)
	for k, v := range u.Extra {
		fields[k] = v
	}
	email, err := json.Marshal(u.Email)
	if err != nil {
		return nil, err
	}
	fields["email"] = email
	return json.Marshal(fields)
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
