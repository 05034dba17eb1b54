// Project Structure Overview
/*
delivery-storefront/
├── cmd/
│   └── server/
│       └── main.go
├── internal/
│   ├── config/          environment configuration
│   ├── database/        gorm connection (postgres | sqlite) and migrations
│   ├── models/          products, option groups, cart lines, order form
│   ├── storage/         key/value stores (memory, gorm, s3) and the cart repository
│   ├── services/
│   │   ├── catalog_service.go
│   │   ├── cart_service.go
│   │   ├── pricing.go
│   │   ├── ui_state.go
│   │   ├── notification_service.go
│   │   ├── order_composer.go
│   │   ├── order_service.go
│   │   ├── menu.go
│   │   └── session_manager.go
│   ├── handlers/
│   ├── middleware/      cors, session, i18n, rate limit, logging
│   ├── i18n/
│   │   ├── i18n.go
│   │   ├── locales/
│   │   │   ├── pt_BR.json
│   │   │   └── en.json
│   │   └── keys.go
│   ├── utils/
│   ├── router/
│   └── tests/
├── go.mod
└── go.sum
*/

// Package storefront is the backend of a delivery menu: it serves the catalog
// fetched from the PocketBase backend, keeps each session's cart, and composes
// the WhatsApp order message.
package storefront
