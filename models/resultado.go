package models

// Resultado es el valor de desenlace asociado a una gestión.
// Corresponde a la tabla "resultado".
type Resultado struct {
	IDResultado     int    `json:"id_resultado,omitempty"`
	NombreResultado string `json:"nombre_resultado"`
	FechaRegistro   string `json:"fecha_registro,omitempty"`
}
