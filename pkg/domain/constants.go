package domain

// Detail bag keys. They double as mapstructure tags for DetailFlags.
const (
	KeyKeepModalOpen       = "keepModalOpen"
	KeyStopFinishEvt       = "stopFinishEvt"
	KeyAnimateConfirmModal = "animateConfirmModal"
	KeyNextTween           = "nextTween"
)

const (
	// ModalWrapperSelector is the fallback swap destination for client-error fragments.
	ModalWrapperSelector = "#modal-wrapper"

	// HeaderRetarget is the response header a server uses to pick its own swap target.
	HeaderRetarget = "HX-Retarget"

	// DefaultErrorMessage is shown for server errors and empty transport failures.
	DefaultErrorMessage = "Ocurrió un error inesperado"

	// DefaultButtonLabel labels the dismiss button of the error modal.
	DefaultButtonLabel = "Aceptar"
)
