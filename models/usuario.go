package models

// Usuario es el operador que registra gestiones.
type Usuario struct {
	IDUsuario     int    `json:"id_usuario,omitempty"`
	Nombres       string `json:"nombres"`
	Apellidos     string `json:"apellidos"`
	Email         string `json:"email"`
	FechaRegistro string `json:"fecha_registro,omitempty"`
}
