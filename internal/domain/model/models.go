package model

// All returns every persisted model, in migration order
func All() []interface{} {
	return []interface{}{
		&ReferralCode{},
		&ReferralClick{},
		&ReferralAttachment{},
		&ReferralConversion{},
		&Lead{},
		&Profile{},
		&PrincipalRole{},
	}
}
