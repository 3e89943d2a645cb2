package models

type Cliente struct {
	IDCliente     int    `json:"id_cliente,omitempty"`
	Nombres       string `json:"nombres"`
	Apellidos     string `json:"apellidos"`
	Email         string `json:"email"`
	Celular       string `json:"celular"`
	FechaRegistro string `json:"fecha_registro,omitempty"`
}
