package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE rtc_models (
				id VARCHAR(255) PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				document JSONB NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL,
				deleted_at TIMESTAMP WITH TIME ZONE
			);

			CREATE INDEX idx_rtc_models_name ON rtc_models(name);
			CREATE INDEX idx_rtc_models_created_at ON rtc_models(created_at);
			CREATE INDEX idx_rtc_models_deleted_at ON rtc_models(deleted_at);
		`,
	}
}
