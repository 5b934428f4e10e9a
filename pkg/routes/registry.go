// Package routes holds the static route table of the Keephy web app and the
// component allow-list the runtime checker validates against.
package routes

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"keephy-check/pkg/model"
)

// Registry is the centralized route configuration. Matching is by exact path;
// parameterized paths like /feedback/:formId are entries of their own and are
// never pattern-matched against concrete URLs.
var Registry = []model.RouteConfig{
	{
		Path:         "/",
		Component:    "HomePage",
		RequiresAuth: false,
		Meta: &model.RouteMeta{
			Title:       "Keephy - NFC Feedback Solutions",
			Description: "Collect real-time customer feedback with NFC, QR codes, and API integration.",
			Keywords:    []string{"NFC", "feedback", "customer satisfaction", "QR code", "API"},
		},
	},
	{
		Path:         "/feedback/:formId",
		Component:    "FeedbackForm",
		RequiresAuth: false,
		Meta: &model.RouteMeta{
			Title:       "Feedback Form - Keephy",
			Description: "Share your feedback with us.",
		},
	},
	{
		Path:         "/thank-you",
		Component:    "ThankYouPage",
		RequiresAuth: false,
		Meta: &model.RouteMeta{
			Title:       "Thank You - Keephy",
			Description: "Thank you for your feedback.",
		},
	},
	{
		Path:         "/privacy",
		Component:    "PrivacyPolicy",
		RequiresAuth: false,
		Meta: &model.RouteMeta{
			Title:       "Privacy Policy - Keephy",
			Description: "Our privacy policy and data protection practices.",
		},
	},
	{
		Path:         "/terms",
		Component:    "TermsOfService",
		RequiresAuth: false,
		Meta: &model.RouteMeta{
			Title:       "Terms of Service - Keephy",
			Description: "Terms and conditions for using Keephy services.",
		},
	},
	{
		Path:         "/admin",
		Component:    "AdminRedirect",
		RequiresAuth: true,
		AllowedRoles: []string{"admin", "super_admin"},
		Meta: &model.RouteMeta{
			Title:       "Admin Dashboard - Keephy",
			Description: "Manage your Keephy platform with comprehensive analytics and controls.",
		},
	},
	{
		Path:         "/dashboard",
		Component:    "UserDashboard",
		RequiresAuth: true,
		AllowedRoles: []string{"user", "admin", "super_admin"},
		Meta: &model.RouteMeta{
			Title:       "Dashboard - Keephy",
			Description: "Your personal Keephy dashboard.",
		},
	},
}

// Components is the allow-list of page components the runtime checker accepts.
// The offline checker stats component files instead; this list stands in where
// no filesystem is reachable.
var Components = []string{
	"HomePage",
	"FeedbackForm",
	"ThankYouPage",
	"PrivacyPolicy",
	"TermsOfService",
	"AdminRedirect",
	"UserDashboard",
}

// Find returns the route whose path exactly matches.
func Find(registry []model.RouteConfig, path string) (model.RouteConfig, bool) {
	for _, r := range registry {
		if r.Path == path {
			return r, true
		}
	}
	return model.RouteConfig{}, false
}

// LoadFile reads a route table from a YAML file, overriding the built-in
// registry for checker runs against a different site layout.
func LoadFile(path string) ([]model.RouteConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Routes []model.RouteConfig `yaml:"routes"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse routes file %s: %w", path, err)
	}
	if len(doc.Routes) == 0 {
		return nil, fmt.Errorf("routes file %s defines no routes", path)
	}
	return doc.Routes, nil
}
