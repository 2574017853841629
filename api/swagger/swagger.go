package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "HackReg API",
        "description": "Hackathon/internship registration and payment service",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Registration", "description": "Applicant intake, referral validation, family context"},
        {"name": "Payment", "description": "Payment reference linking and reminders"},
        {"name": "Admin", "description": "Operator verification endpoints"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/register": {
            "post": {
                "tags": ["Registration"],
                "summary": "Register an applicant",
                "responses": {
                    "201": {"description": "Created applicant"},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/api/register/family": {
            "post": {
                "tags": ["Registration"],
                "summary": "Record guardian and income data",
                "responses": {
                    "200": {"description": "Recorded"},
                    "400": {"description": "Missing applicant_id"}
                }
            }
        },
        "/api/register/update-ref": {
            "post": {
                "tags": ["Payment"],
                "summary": "Link a payment provider order id",
                "responses": {
                    "200": {"description": "Linked"},
                    "404": {"description": "Unknown applicant"},
                    "409": {"description": "Payment already completed"},
                    "500": {"description": "Server misconfiguration or store error"}
                }
            }
        },
        "/api/payment-context": {
            "get": {
                "tags": ["Payment"],
                "summary": "Fetch payment context",
                "parameters": [
                    {"name": "id", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Projection"},
                    "400": {"description": "Missing id"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/api/send-payment-reminder": {
            "post": {
                "tags": ["Payment"],
                "summary": "Send a payment-pending reminder",
                "responses": {
                    "200": {"description": "Sent or already paid"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/api/validate-referral": {
            "post": {
                "tags": ["Registration"],
                "summary": "Validate a referral code",
                "responses": {
                    "200": {"description": "Verdict"},
                    "500": {"description": "Store error"}
                }
            }
        }
    },
    "definitions": {
        "Applicant": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "track": {"type": "string"},
                "team_size": {"type": "integer"},
                "payment_status": {"type": "string"},
                "payment_order_id": {"type": "string"},
                "amount_paid": {"type": "number"},
                "application_status": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
