package models

type TipoGestion struct {
	IDTipoGestion     int    `json:"id_tipo_gestion,omitempty"`
	NombreTipoGestion string `json:"nombre_tipo_gestion"`
	FechaRegistro     string `json:"fecha_registro,omitempty"`
}
