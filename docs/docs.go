// Package docs Code generated by swag init; edited by hand to track the routes.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/users/register": {
            "post": {
                "summary": "Register the authenticated identity as a user",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/users/register-by-name": {
            "post": {
                "summary": "Register with a unique name and credential",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/users/verify": {
            "post": {
                "summary": "Mark the caller's user record as verified (idempotent)",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/users/verify-by-name": {
            "post": {
                "summary": "Verify by name and credential, resolving the identity",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/users": {
            "get": {"summary": "List all users with balances", "responses": {"200": {"description": "OK"}}}
        },
        "/users/{identity}": {
            "get": {"summary": "Lookup a user", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/balances/{identity}": {
            "get": {"summary": "Token balance (0 for unknown identities)", "responses": {"200": {"description": "OK"}}}
        },
        "/tokens/transfer": {
            "post": {
                "summary": "Transfer tokens from the caller to another identity",
                "responses": {"200": {"description": "OK"}, "402": {"description": "Insufficient balance"}}
            }
        },
        "/tokens/bonus": {
            "post": {
                "summary": "Grant the one-time welcome bonus",
                "responses": {"200": {"description": "OK"}, "409": {"description": "Already credited"}}
            }
        },
        "/animals": {
            "post": {
                "summary": "Register an animal (owner = breeder = caller)",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Duplicate microchip"}}
            },
            "get": {"summary": "List all animals", "responses": {"200": {"description": "OK"}}}
        },
        "/animals/{animalID}": {
            "get": {"summary": "Get an animal", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/animals/{animalID}/lineage": {
            "get": {"summary": "Animal followed by its ancestor chain", "responses": {"200": {"description": "OK"}}}
        },
        "/animals/{animalID}/transfer": {
            "post": {"summary": "Transfer ownership (owner only)", "responses": {"200": {"description": "OK"}, "403": {"description": "Not owner"}}}
        },
        "/animals/{animalID}/verify": {
            "post": {"summary": "Verify an animal (verifier role or breeder)", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/microchips/{chip}": {
            "get": {"summary": "Resolve a microchip to an animal id", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/litters": {
            "post": {"summary": "Register a litter", "responses": {"201": {"description": "Created"}, "400": {"description": "Parentage mismatch"}}},
            "get": {"summary": "List litters", "responses": {"200": {"description": "OK"}}}
        },
        "/litters/{litterID}": {
            "get": {"summary": "Get a litter", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/certificates/mint": {
            "post": {"summary": "Mint a breed certificate, debiting the mint fee", "responses": {"201": {"description": "Created"}, "402": {"description": "Insufficient balance"}}}
        },
        "/certificates": {
            "get": {"summary": "List all certificates", "responses": {"200": {"description": "OK"}}}
        },
        "/certificates/by-owner/{identity}": {
            "get": {"summary": "List certificates by owner", "responses": {"200": {"description": "OK"}}}
        },
        "/stats": {
            "get": {"summary": "Global registry counters", "responses": {"200": {"description": "OK"}}}
        },
        "/stats/breeder/{identity}": {
            "get": {"summary": "Derived breeder statistics", "responses": {"200": {"description": "OK"}, "404": {"description": "No animals"}}}
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Animint Registry API",
	Description:      "Tamper-evident pedigree registry: animals, litters, users, token ledger and breed certificates.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
