// Package cli provides the interactive storefront command-line client.
//
// The client is a REPL with a current location, a path such as /products.
// Every navigation goes through the authorization gate; permitted routes
// get a view that owns its own state and commands:
//   - / , /login, /register: entry points
//   - /products, /products/<id>: public catalog, product detail and ordering
//   - /products-admin, /categories, /users, /orders: admin CRUD screens
//
// Navigation requested by the resource gateway (a 401 from the server) is
// queued on a Navigation and applied once the running command returns.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
