// Package account implements signup and login: a credential store that
// keeps only bcrypt hashes of user passwords, and a session issuer that
// exchanges verified credentials for stateless HS256 bearer tokens.
package account
