// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentialsRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentialsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/tweets": {
            "get": {
                "tags": ["tweets"],
                "summary": "List tweets",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/tweetResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["tweets"],
                "summary": "Create a tweet",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Client retry key", "name": "Idempotency-Key", "in": "header"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/contentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Replayed from Idempotency-Key", "schema": {"$ref": "#/definitions/tweetResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/tweetResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/tweets/{id}": {
            "get": {
                "tags": ["tweets"],
                "summary": "Get a tweet",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/tweetDetailResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["tweets"],
                "summary": "Update a tweet",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/contentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/tweetResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["tweets"],
                "summary": "Delete a tweet",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/deleteTweetResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/tweets/{id}/like": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["tweets"],
                "summary": "Toggle like",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/likeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/tweets/{id}/retweet": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["tweets"],
                "summary": "Toggle retweet",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/retweetResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/tweets/{id}/reply": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["tweets"],
                "summary": "Reply to a tweet",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/contentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/replyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List users",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/userSummaryResponse"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get a user",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/userSummaryResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Delete a user",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/deleteUserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/users/{id}/role": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Change a user's role",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/roleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/roleUpdateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/users/{id}/follow": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Toggle follow",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/followResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/users/profile/{username}": {
            "get": {
                "tags": ["users"],
                "summary": "Get a profile",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/profileResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/users/me/profile": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update own profile",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/profileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/userSummaryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "ErrorResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "credentialsRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "contentRequest": {"type": "object", "properties": {"content": {"type": "string"}}},
        "roleRequest": {"type": "object", "properties": {"role": {"type": "string", "enum": ["user", "editor", "admin"]}}},
        "profileRequest": {"type": "object", "properties": {
            "displayName": {"type": "string", "maxLength": 50},
            "bio": {"type": "string", "maxLength": 160},
            "location": {"type": "string", "maxLength": 30},
            "website": {"type": "string", "maxLength": 100},
            "avatar": {"type": "string"},
            "banner": {"type": "string"}
        }},
        "authUserResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "username": {"type": "string"}, "role": {"type": "string"}}},
        "authResponse": {"type": "object", "properties": {"message": {"type": "string"}, "token": {"type": "string"}, "user": {"$ref": "#/definitions/authUserResponse"}}},
        "authorResponse": {"type": "object", "properties": {
            "id": {"type": "integer"}, "username": {"type": "string"}, "displayName": {"type": "string"},
            "avatar": {"type": "string"}, "verified": {"type": "boolean"}
        }},
        "tweetResponse": {"type": "object", "properties": {
            "id": {"type": "integer"}, "userId": {"type": "integer"}, "username": {"type": "string"},
            "content": {"type": "string"}, "images": {"type": "array", "items": {"type": "string"}},
            "timestamp": {"type": "string", "format": "date-time"}, "updatedAt": {"type": "string", "format": "date-time"},
            "isRetweet": {"type": "boolean"}, "originalTweetId": {"type": "integer"}, "replyToId": {"type": "integer"},
            "author": {"$ref": "#/definitions/authorResponse"},
            "likesCount": {"type": "integer"}, "retweetsCount": {"type": "integer"}, "repliesCount": {"type": "integer"},
            "userLiked": {"type": "boolean"}, "userRetweeted": {"type": "boolean"}
        }},
        "replyResponse": {"type": "object", "properties": {
            "id": {"type": "integer"}, "tweetId": {"type": "integer"}, "userId": {"type": "integer"},
            "username": {"type": "string"}, "content": {"type": "string"},
            "timestamp": {"type": "string", "format": "date-time"}, "author": {"$ref": "#/definitions/authorResponse"}
        }},
        "tweetDetailResponse": {"allOf": [
            {"$ref": "#/definitions/tweetResponse"},
            {"type": "object", "properties": {"replies": {"type": "array", "items": {"$ref": "#/definitions/replyResponse"}}}}
        ]},
        "deleteTweetResponse": {"type": "object", "properties": {"message": {"type": "string"}, "tweet": {"$ref": "#/definitions/tweetResponse"}}},
        "likeResponse": {"type": "object", "properties": {"liked": {"type": "boolean"}, "likesCount": {"type": "integer"}}},
        "retweetResponse": {"type": "object", "properties": {"retweeted": {"type": "boolean"}, "retweetsCount": {"type": "integer"}}},
        "followResponse": {"type": "object", "properties": {"following": {"type": "boolean"}, "followersCount": {"type": "integer"}}},
        "userSummaryResponse": {"type": "object", "properties": {
            "id": {"type": "integer"}, "username": {"type": "string"}, "displayName": {"type": "string"},
            "role": {"type": "string"}, "bio": {"type": "string"}, "location": {"type": "string"},
            "website": {"type": "string"}, "avatar": {"type": "string"}, "banner": {"type": "string"},
            "verified": {"type": "boolean"}, "followersCount": {"type": "integer"}, "followingCount": {"type": "integer"},
            "tweetsCount": {"type": "integer"}, "createdAt": {"type": "string", "format": "date-time"},
            "updatedAt": {"type": "string", "format": "date-time"}
        }},
        "profileResponse": {"type": "object", "properties": {
            "id": {"type": "integer"}, "username": {"type": "string"}, "displayName": {"type": "string"},
            "bio": {"type": "string"}, "location": {"type": "string"}, "website": {"type": "string"},
            "avatar": {"type": "string"}, "banner": {"type": "string"}, "verified": {"type": "boolean"},
            "followersCount": {"type": "integer"}, "followingCount": {"type": "integer"}, "tweetsCount": {"type": "integer"},
            "createdAt": {"type": "string", "format": "date-time"}, "isFollowing": {"type": "boolean"},
            "tweets": {"type": "array", "items": {"$ref": "#/definitions/tweetResponse"}}
        }},
        "roleUpdateResponse": {"type": "object", "properties": {"message": {"type": "string"}, "user": {"$ref": "#/definitions/userSummaryResponse"}}},
        "deleteUserResponse": {"type": "object", "properties": {"message": {"type": "string"}, "user": {"type": "object", "properties": {
            "id": {"type": "integer"}, "username": {"type": "string"}, "displayName": {"type": "string"}, "role": {"type": "string"}
        }}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Twittoo API",
	Description:      "Microblogging backend: accounts, tweets, engagement and follows.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
