// Package handler is the HTTP layer between the router and the services.
//
// Every endpoint binds and validates one request type, makes one service
// call and either shapes the result or translates the service error. The
// integration (EEDM) resources share one generic handler; the self-service
// endpoints each carry an ErrorPolicy describing their error contract.
package handler
