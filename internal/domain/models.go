package domain

// Models returns every persisted model, in migration order.
func Models() []any {
	return []any{
		&User{},
		&Project{},
		&BlogPost{},
		&Lead{},
		&TeamMember{},
		&Testimonial{},
		&HostingPackage{},
		&FAQ{},
		&Service{},
		&Technology{},
		&Subscription{},
	}
}
